package gateway

//go:generate go run ../cmd/gen-allowlist --input allowlists.yaml --output allowlists_gen.go

// RdiffBackup lets the build agent run rdiff-backup on the pairs listed in
// allowlists.yaml.
func RdiffBackup() *Gateway {
	return &Gateway{
		Name:            "rdiff-backup-gateway",
		TrustedPath:     "/bin:/usr/bin",
		Executable:      "/usr/bin/rdiff-backup",
		AcceptVerbosity: true,
		AllowList:       RdiffBackupAllowList(),
	}
}

// TimeMachine lets the build agent run the time_machine snapshot script that
// is installed next to the gateway. It accepts no arguments.
func TimeMachine() *Gateway {
	return &Gateway{
		Name:            "time-machine-gateway",
		TrustedPath:     "/sbin:/bin:/usr/sbin:/usr/bin",
		Executable:      "time_machine",
		InstallRelative: true,
	}
}
