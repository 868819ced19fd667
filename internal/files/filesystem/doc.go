// Package filesystem provides the file access abstraction used to read the
// analysis documents and write the consolidated output.
//
// Key interfaces:
//   - FileSystemProvider: reads, stats and creates files
//   - FileInfo: File metadata, an alias of fs.FileInfo
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
//
// Missing paths are reported with errors that satisfy errors.Is(err, fs.ErrNotExist)
// in both implementations.
package filesystem
