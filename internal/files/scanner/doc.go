// Package scanner locates the analysis documents in an output directory,
// reads them through a filesystem provider and records their checksums.
//
// The scanner does not interpret document content; parsing happens in the
// extract package once all required inputs have been found.
package scanner
