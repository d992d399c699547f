package gateway

// An Entry is one authorized (source, destination) pair. Source may name a
// path on a remote host in host:path form; it is only ever compared as a
// whole.
type Entry struct {
	Source      string
	Destination string
}

// An AllowList is the ordered, compiled-in set of pairs a gateway accepts.
type AllowList []Entry

// A Verdict is the outcome of checking a request against an AllowList. When
// Valid is true, Entry is the matched entry and its literals, not the caller's
// strings, are what gets forwarded.
type Verdict struct {
	Valid bool
	Index int
	Entry Entry
}

// Match looks for the first entry whose source and destination are both
// byte-for-byte equal to the given ones. No normalization of any kind is
// performed: the entries already spell out the exact accepted strings.
func (l AllowList) Match(source, destination string) Verdict {
	for i, entry := range l {
		if entry.Source == source && entry.Destination == destination {
			return Verdict{
				Valid: true,
				Index: i,
				Entry: entry,
			}
		}
	}
	return Verdict{Index: -1}
}
