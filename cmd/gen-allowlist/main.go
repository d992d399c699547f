// Command gen-allowlist renders the build-time allow-list definitions into Go
// source. It runs through go generate and is never installed: the gateways
// only know the tables that were compiled into them.
package main

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// EntryDefinition is one pair in allowlists.yaml.
type EntryDefinition struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
}

// AllowListDefinition is a named allow-list in allowlists.yaml.
type AllowListDefinition struct {
	Name    string            `yaml:"name"`
	Entries []EntryDefinition `yaml:"entries"`
}

// Definitions is the top-level document of allowlists.yaml.
type Definitions struct {
	AllowLists []AllowListDefinition `yaml:"allowlists"`
}

var sourceTemplate = template.Must(template.New("allowlists").Parse(
	`// Code generated by gen-allowlist from {{.Input}}. DO NOT EDIT.

package {{.Package}}
{{range .AllowLists}}
// {{.Name}}AllowList returns a fresh copy of the {{.Name}} allow-list.
func {{.Name}}AllowList() AllowList {
	return AllowList{
{{- range .Entries}}
		{Source: {{printf "%q" .Source}}, Destination: {{printf "%q" .Destination}}},
{{- end}}
	}
}
{{end}}`))

// ParseDefinitions reads and validates allowlists.yaml.
func ParseDefinitions(r io.Reader) (*Definitions, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var definitions Definitions
	if err := decoder.Decode(&definitions); err != nil {
		return nil, errors.Wrap(err, "failed to parse allow-list definitions")
	}
	if err := definitions.Validate(); err != nil {
		return nil, err
	}
	return &definitions, nil
}

func validLiteral(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r == 0 || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// Validate rejects definitions that could never match or that would match
// ambiguously.
func (d *Definitions) Validate() error {
	names := make(map[string]struct{})
	for _, allowList := range d.AllowLists {
		if allowList.Name == "" || !unicode.IsUpper(rune(allowList.Name[0])) {
			return errors.Errorf("allow-list name %q must be an exported identifier", allowList.Name)
		}
		if _, ok := names[allowList.Name]; ok {
			return errors.Errorf("duplicate allow-list %q", allowList.Name)
		}
		names[allowList.Name] = struct{}{}
		if len(allowList.Entries) == 0 {
			return errors.Errorf("allow-list %q is empty", allowList.Name)
		}

		pairs := make(map[EntryDefinition]struct{})
		for i, entry := range allowList.Entries {
			if !validLiteral(entry.Source) || !validLiteral(entry.Destination) {
				return errors.Errorf("allow-list %q entry %d: empty or non-printable literal", allowList.Name, i)
			}
			if !strings.HasPrefix(entry.Destination, "/") {
				return errors.Errorf("allow-list %q entry %d: destination must be absolute", allowList.Name, i)
			}
			if strings.HasPrefix(entry.Source, "-") || strings.HasPrefix(entry.Destination, "-") {
				return errors.Errorf("allow-list %q entry %d: literal would be parsed as a flag", allowList.Name, i)
			}
			if _, ok := pairs[entry]; ok {
				return errors.Errorf("allow-list %q entry %d: duplicate pair", allowList.Name, i)
			}
			pairs[entry] = struct{}{}
		}
	}
	return nil
}

// Render produces the gofmt'd Go source for definitions.
func Render(definitions *Definitions, packageName, input string) ([]byte, error) {
	var buf bytes.Buffer
	err := sourceTemplate.Execute(&buf, struct {
		*Definitions
		Package string
		Input   string
	}{
		Definitions: definitions,
		Package:     packageName,
		Input:       input,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render allow-lists")
	}
	source, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "failed to format allow-lists")
	}
	return source, nil
}

func newRootCommand() *cobra.Command {
	var input, output, packageName string
	cmd := &cobra.Command{
		Use:           "gen-allowlist",
		Short:         "Compile allow-list definitions into Go source",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(input)
			if err != nil {
				return err
			}
			defer f.Close()

			definitions, err := ParseDefinitions(f)
			if err != nil {
				return err
			}
			source, err := Render(definitions, packageName, filepath.Base(input))
			if err != nil {
				return err
			}
			return os.WriteFile(output, source, 0644)
		},
	}
	cmd.Flags().StringVar(&input, "input", "allowlists.yaml", "allow-list definitions")
	cmd.Flags().StringVar(&output, "output", "allowlists_gen.go", "generated Go file")
	cmd.Flags().StringVar(&packageName, "package", "gateway", "package of the generated file")
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gen-allowlist: %v\n", err)
		os.Exit(1)
	}
}
