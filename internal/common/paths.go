package common

import (
	"path/filepath"
	"strings"
)

// IndexExt is the file extension of a persisted record index.
const IndexExt = ".sqi"

var recordExts = map[string]struct{}{
	".fa":    {},
	".fasta": {},
	".fna":   {},
	".ffn":   {},
	".faa":   {},
	".frn":   {},
	".seq":   {},
}

// IndexPath returns the index file path for a record file.
func IndexPath(path string) string {
	return path + IndexExt
}

// IsIndexPath reports whether path names an index file.
func IsIndexPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), IndexExt)
}

// IsRecordPath reports whether path carries a known record file extension,
// optionally followed by ".gz".
func IsRecordPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gz" {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	_, ok := recordExts[ext]
	return ok
}
