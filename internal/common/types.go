package common

import "strings"

// Record is a single delimiter line plus its payload, in file order.
type Record struct {
	ID          string
	Description string
	Sequence    string
}

// Header reconstructs the delimiter line body (without the leading marker).
func (r Record) Header() string {
	if r.Description == "" {
		return r.ID
	}
	return r.ID + " " + r.Description
}

// Len returns the number of payload symbols.
func (r Record) Len() int {
	return len(r.Sequence)
}

// Equal compares two records field by field.
func (r Record) Equal(other Record) bool {
	return r.ID == other.ID && r.Description == other.Description && r.Sequence == other.Sequence
}

// ParseHeader splits a delimiter line body into identifier and description.
// The identifier is the first whitespace-delimited token.
func ParseHeader(line string) (id, desc string) {
	line = strings.TrimSpace(line)
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}

// RecordIterator produces a stream of records. Next returns ok=false when the
// stream is exhausted. Implementations release their source in Close.
type RecordIterator interface {
	Next() (Record, bool, error)
	Close() error
}
