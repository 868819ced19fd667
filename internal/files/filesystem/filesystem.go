package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider gives access to input documents and output files.
type FileSystemProvider interface {
	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// Create creates or truncates the file at path for writing.
	// Content is only guaranteed to be persisted once Close returns nil.
	Create(path string) (io.WriteCloser, error)
}
