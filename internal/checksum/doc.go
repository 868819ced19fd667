// Package checksum provides document content hashing with normalization support.
//
// Two checksums are computed for every input document:
//
//   - Raw checksum: Hash of the exact file content (detects all changes)
//   - Normalized checksum: Hash after removing XML comments and collapsing
//     whitespace (stable across re-indentation and line-ending changes)
//
// # Normalization Strategy
//
//  1. Remove XML comments (<!-- ... -->), leaving CDATA sections intact
//  2. Collapse all whitespace sequences to single spaces
//  3. Trim leading/trailing whitespace
//
// Unlike the raw checksum, the normalized checksum does not change when an
// analysis tool rewrites a document with different indentation or CRLF line
// endings, so it is the one used for dataset identity.
//
// # Example Usage
//
//	calculator := checksum.New()
//	rawChecksum := calculator.CalculateRaw(fileContent)
//	normalizedChecksum := calculator.CalculateNormalized(fileContent)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
