package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/vvka-141/cadpost/internal/checksum"
	"github.com/vvka-141/cadpost/internal/files/filesystem"
	"github.com/vvka-141/cadpost/pkg/cadpost"
)

// Scanner finds and reads the fixed set of input documents.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided calculator and fsProvider are also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a new scanner with the given checksum calculator.
// Uses OS filesystem by default.
// Panics if calculator is nil.
func NewScanner(calculator checksum.Calculator) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: filesystem.NewOSFileSystem(),
	}
}

// NewScannerWithFS creates a new scanner with a custom filesystem provider.
// Panics if calculator or fsProvider is nil.
func NewScannerWithFS(calculator checksum.Calculator, fsProvider filesystem.FileSystemProvider) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
	}
}

// ScanInputs reads every document in cadpost.InputFiles from dir, in merge order.
// The first missing document aborts the scan with an error wrapping
// cadpost.ErrMissingInput.
func (s *Scanner) ScanInputs(dir string) ([]cadpost.InputFile, error) {
	inputs := make([]cadpost.InputFile, 0, len(cadpost.InputFiles))
	for _, name := range cadpost.InputFiles {
		input, err := s.ScanInput(dir, name)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

// ScanInput reads a single named document from dir.
func (s *Scanner) ScanInput(dir, name string) (cadpost.InputFile, error) {
	path := filepath.Join(dir, name)

	info, err := s.fsProvider.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cadpost.InputFile{}, fmt.Errorf("%w: %s not found in %s", cadpost.ErrMissingInput, name, dir)
		}
		return cadpost.InputFile{}, fmt.Errorf("%w: %s: %v", cadpost.ErrMissingInput, path, err)
	}
	if info.IsDir() {
		return cadpost.InputFile{}, fmt.Errorf("%w: %s is a directory, not a file", cadpost.ErrMissingInput, path)
	}

	content, err := s.fsProvider.ReadFile(path)
	if err != nil {
		return cadpost.InputFile{}, fmt.Errorf("%w: failed to read %s: %v", cadpost.ErrMissingInput, path, err)
	}

	return cadpost.InputFile{
		Name:        name,
		Path:        path,
		SizeBytes:   int64(len(content)),
		ModifiedAt:  info.ModTime(),
		Checksum:    s.calculator.CalculateNormalized(content),
		ChecksumRaw: s.calculator.CalculateRaw(content),
		Content:     content,
	}, nil
}

// MissingInputs reports which of the required documents are absent from dir,
// without reading any of them.
func (s *Scanner) MissingInputs(dir string) []string {
	var missing []string
	for _, name := range cadpost.InputFiles {
		info, err := s.fsProvider.Stat(filepath.Join(dir, name))
		if err != nil || info.IsDir() {
			missing = append(missing, name)
		}
	}
	return missing
}
