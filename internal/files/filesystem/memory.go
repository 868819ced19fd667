package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	content []byte
	modTime time.Time
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Directories exist implicitly as parents of added files.
// Safe for concurrent use by multiple goroutines.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string]*memoryFile // absolute path -> file
	root  string
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// Relative paths are resolved against root, normalized to forward slashes.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  path.Clean(filepath.ToSlash(root)),
	}
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddFileWithTime(filePath, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.files[mfs.abs(filePath)] = &memoryFile{content: []byte(content), modTime: modTime}
}

// Remove deletes a file. Removing a missing file is a no-op.
func (mfs *MemoryFileSystem) Remove(filePath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	delete(mfs.files, mfs.abs(filePath))
}

// Paths returns every file path in sorted order.
func (mfs *MemoryFileSystem) Paths() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	out := make([]string, 0, len(mfs.files))
	for p := range mfs.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (mfs *MemoryFileSystem) abs(p string) string {
	p = filepath.ToSlash(p)
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) isDir(absPath string) bool {
	if absPath == mfs.root {
		return true
	}
	prefix := absPath + "/"
	for p := range mfs.files {
		if len(p) > len(prefix) && p[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	absPath := mfs.abs(filePath)
	file, exists := mfs.files[absPath]
	if !exists {
		if mfs.isDir(absPath) {
			return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
		}
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
	}
	return bytes.Clone(file.content), nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	absPath := mfs.abs(statPath)
	if file, exists := mfs.files[absPath]; exists {
		return &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(file.content)),
			mode:    0644,
			modTime: file.modTime,
		}, nil
	}
	if mfs.isDir(absPath) {
		return &memoryFileInfo{
			name:  path.Base(absPath),
			mode:  0755 | fs.ModeDir,
			isDir: true,
		}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
}

// Create implements FileSystemProvider.Create. The file becomes visible
// with its full content when the returned writer is closed.
func (mfs *MemoryFileSystem) Create(filePath string) (io.WriteCloser, error) {
	mfs.mu.RLock()
	absPath := mfs.abs(filePath)
	dir := mfs.isDir(absPath)
	mfs.mu.RUnlock()

	if dir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return &memoryWriter{fs: mfs, absPath: absPath}, nil
}

type memoryWriter struct {
	fs      *MemoryFileSystem
	absPath string
	buf     bytes.Buffer
	closed  bool
}

func (w *memoryWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fs.ErrClosed
	}
	return w.buf.Write(p)
}

func (w *memoryWriter) Close() error {
	if w.closed {
		return fs.ErrClosed
	}
	w.closed = true
	w.fs.mu.Lock()
	defer w.fs.mu.Unlock()
	w.fs.files[w.absPath] = &memoryFile{content: w.buf.Bytes(), modTime: time.Now()}
	return nil
}
