package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/cadpost/internal/config"
	"github.com/vvka-141/cadpost/internal/jsonfmt"
	"github.com/vvka-141/cadpost/internal/logging"
	"github.com/vvka-141/cadpost/internal/reader"
	"github.com/vvka-141/cadpost/pkg/cadpost"
)

// stdoutPath as an output path writes the document to standard output.
const stdoutPath = "-"

// session is the resolved state shared by a single command invocation.
type session struct {
	dir      string
	settings config.Settings
	logger   cadpost.Logger
	closeLog func()
}

// resolveInputDir returns the absolute input directory. No argument means
// the working directory.
func resolveInputDir(args []string) (string, error) {
	dir := ""
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid directory %q: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: input directory %s: %v", cadpost.ErrMissingInput, abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", cadpost.ErrMissingInput, abs)
	}
	return abs, nil
}

// newSession resolves the input directory, layered settings and logger.
// outputFlag is applied last when non-empty.
func newSession(cmd *cobra.Command, args []string, outputFlag string) (*session, error) {
	dir, err := resolveInputDir(args)
	if err != nil {
		return nil, err
	}

	_ = godotenv.Load()

	settings, err := config.Resolve(dir, os.Getenv)
	if err != nil {
		return nil, err
	}
	if rootFlags.logFormat != "" {
		format, err := config.ParseLogFormat(rootFlags.logFormat)
		if err != nil {
			return nil, fmt.Errorf("invalid --log-format: %w", err)
		}
		settings.LogFormat = format
	}
	if outputFlag != "" {
		settings.OutputPath = outputFlag
	}

	logger, closeLog, err := newLogger(settings.LogFormat, rootFlags.verbose, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	logger.Verbose("Input directory: %s", dir)
	logger.Verbose("Output: %s", settings.OutputPathFor(dir))

	return &session{dir: dir, settings: settings, logger: logger, closeLog: closeLog}, nil
}

func newLogger(format string, verbose bool, stderr io.Writer) (cadpost.Logger, func(), error) {
	if format == config.LogFormatJSON {
		zl, err := logging.NewZapLogger(verbose)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create logger: %w", err)
		}
		return zl, func() { _ = zl.Sync() }, nil
	}
	return logging.NewConsoleLoggerTo(stderr, verbose), func() {}, nil
}

func (s *session) format() jsonfmt.Options {
	opts := jsonfmt.DefaultOptions
	opts.InlineScalarArrays = s.settings.InlineArrays
	return opts
}

func (s *session) outputPath() string {
	if s.settings.OutputPath == stdoutPath {
		return stdoutPath
	}
	return s.settings.OutputPathFor(s.dir)
}

// parse reads the input directory once.
func (s *session) parse() (*reader.Data, error) {
	r, err := reader.NewReader(s.dir, reader.WithLogger(s.logger), reader.WithFormat(s.format()))
	if err != nil {
		return nil, err
	}
	return r.Parse("")
}

// convert parses the inputs and writes the document to the configured output.
func (s *session) convert(stdout io.Writer) (*reader.Data, error) {
	data, err := s.parse()
	if err != nil {
		return nil, err
	}

	out := s.outputPath()
	if out == stdoutPath {
		doc, err := data.Dump()
		if err != nil {
			return nil, err
		}
		if _, err := fmt.Fprintln(stdout, string(doc)); err != nil {
			return nil, fmt.Errorf("%w: %w", cadpost.ErrOutputFailed, err)
		}
		return data, nil
	}

	if err := data.Write(out); err != nil {
		return nil, err
	}
	s.logger.Info("Wrote %d components to %s", len(data.ComponentIDs()), out)
	return data, nil
}
