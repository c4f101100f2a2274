// Package ingest finds loan packages on disk, either by walking a directory
// once or by watching an inbox for new files.
package ingest

// Candidate is one package file found on disk.
type Candidate struct {
	Path    string
	Size    int64
	HashHex string // sha256 of the content
}

// DirStats summarizes a directory scan.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Deduplicated uint32
	Failed       uint32
}
