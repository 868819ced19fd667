package reader

import (
	"fmt"
	"os"
	"sync"

	"github.com/vvka-141/cadpost/internal/checksum"
	"github.com/vvka-141/cadpost/internal/extract"
	"github.com/vvka-141/cadpost/internal/files/filesystem"
	"github.com/vvka-141/cadpost/internal/files/scanner"
	"github.com/vvka-141/cadpost/internal/identity"
	"github.com/vvka-141/cadpost/internal/jsonfmt"
	"github.com/vvka-141/cadpost/internal/logging"
	"github.com/vvka-141/cadpost/internal/merge"
	"github.com/vvka-141/cadpost/internal/xmltree"
	"github.com/vvka-141/cadpost/pkg/cadpost"
)

// Option configures a Reader.
type Option func(*Reader)

// WithFileSystem sets the provider used to read inputs and write output.
func WithFileSystem(fsProvider filesystem.FileSystemProvider) Option {
	return func(r *Reader) {
		if fsProvider != nil {
			r.fsProvider = fsProvider
		}
	}
}

// WithLogger sets the logger. The default discards all messages.
func WithLogger(logger cadpost.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFormat sets the JSON layout used by Data.Dump and Data.Write.
func WithFormat(opts jsonfmt.Options) Option {
	return func(r *Reader) {
		r.format = opts
	}
}

// WithParse makes NewReader parse the directory immediately.
func WithParse() Option {
	return func(r *Reader) {
		r.parseOnCreate = true
	}
}

// Reader parses analysis output directories.
// Safe for concurrent use; the most recent successful parse wins.
type Reader struct {
	dir           string
	fsProvider    filesystem.FileSystemProvider
	logger        cadpost.Logger
	format        jsonfmt.Options
	parseOnCreate bool

	mu   sync.RWMutex
	data *Data
}

// NewReader creates a reader for dir. An empty dir means the process
// working directory. With WithParse, any parse error is returned here.
func NewReader(dir string, opts ...Option) (*Reader, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		dir = wd
	}

	r := &Reader{
		dir:        dir,
		fsProvider: filesystem.NewOSFileSystem(),
		logger:     logging.NewNullLogger(),
		format:     jsonfmt.DefaultOptions,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.parseOnCreate {
		if _, err := r.Parse(""); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Dir returns the directory the reader was created for.
func (r *Reader) Dir() string {
	return r.dir
}

// CADData returns the model from the last successful Parse, or nil.
func (r *Reader) CADData() *Data {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data
}

// Parse reads the three documents from dir (the reader's directory when
// empty) and builds the consolidated model. On error the previously parsed
// model, if any, is kept.
func (r *Reader) Parse(dir string) (*Data, error) {
	if dir == "" {
		dir = r.dir
	}
	r.logger.Verbose("Scanning %s", dir)

	inputs, err := scanner.NewScannerWithFS(checksum.New(), r.fsProvider).ScanInputs(dir)
	if err != nil {
		return nil, err
	}

	trees := make(map[string]*xmltree.Element, len(inputs))
	for _, in := range inputs {
		root, err := xmltree.ParseBytes(in.Content, in.Name)
		if err != nil {
			return nil, err
		}
		trees[in.Name] = root
		r.logger.Verbose("Parsed %s (%d bytes, sha256 %s)", in.Name, in.SizeBytes, in.ChecksumRaw)
	}

	assembly, err := extract.Assembly(trees[cadpost.CADAssemblyFile])
	if err != nil {
		return nil, err
	}
	metrics, err := extract.Metrics(trees[cadpost.CADAssemblyMetricsFile])
	if err != nil {
		return nil, err
	}
	computed, err := extract.Computed(trees[cadpost.ComputedValuesFile])
	if err != nil {
		return nil, err
	}

	metricRecords := metrics.Records()
	computedRecords := computed.Records()
	table := merge.Build(assembly.Components, metricRecords, computedRecords)
	r.logger.Verbose("Merged %d components (assembly %d, metrics %d, computed %d)",
		len(table), len(assembly.Components), len(metricRecords), len(computedRecords))

	data := &Data{
		table:      table,
		trees:      trees,
		inputs:     inputs,
		datasetID:  identity.DatasetID(inputs),
		assembly:   assembly,
		metrics:    metrics,
		computed:   computed,
		format:     r.format,
		fsProvider: r.fsProvider,
	}

	r.mu.Lock()
	r.data = data
	r.mu.Unlock()
	return data, nil
}
