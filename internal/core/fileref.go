package core

import (
	"strings"
	"time"
)

// FileRef identifies one columnar snapshot file in the object store.
// IsLoadFile is true iff the key's filename contains "LOAD"; the first
// full-load file additionally contains "LOAD00000001".
type FileRef struct {
	Bucket       string
	Key          string
	LastModified time.Time
	IsLoadFile   bool
}

// NewFileRef derives IsLoadFile from the key and returns a FileRef.
func NewFileRef(bucket, key string, lastModified time.Time) FileRef {
	return FileRef{
		Bucket:       bucket,
		Key:          key,
		LastModified: lastModified,
		IsLoadFile:   strings.Contains(key, "LOAD"),
	}
}

// IsFirstLoadFile reports whether this is the first full-load file for a
// table, distinguished by "LOAD00000001" in the key.
func (f FileRef) IsFirstLoadFile() bool {
	return strings.Contains(f.Key, "LOAD00000001")
}
