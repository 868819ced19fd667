// Package files groups the input-file sub-packages.
//
//   - filesystem: filesystem abstraction with OS and in-memory implementations
//   - scanner: locates the three assembly exports and records their metadata
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/cadpost/internal/checksum"
//	    "github.com/vvka-141/cadpost/internal/files/scanner"
//	)
//
//	s := scanner.NewScanner(checksum.New())
//	inputs, err := s.ScanInputs("./export")
package files
