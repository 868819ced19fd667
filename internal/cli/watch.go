package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/cadpost/internal/retry"
	"github.com/vvka-141/cadpost/internal/watcher"
	"github.com/vvka-141/cadpost/pkg/cadpost"
)

// watchRetries bounds how often a conversion is retried while the analysis
// tool is still writing its documents.
const watchRetries = 3

var watchFlags struct {
	output string
}

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Regenerate the JSON document whenever an input document changes",
	Long: `Converts dir once, then watches it and converts again after the input
documents have been quiet for the debounce period (watch.debounce in
cadpost.yaml or CADPOST_WATCH_DEBOUNCE, default 500ms). Failed conversions
caused by missing or partially written inputs are retried a few times with
backoff; persistent failures are logged and the previous output is left in
place. Stop with Ctrl+C.`,
	Args: OptionalInputDir,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchFlags.output, "output", "o", "", "Output file path")
}

func resetWatchFlags() {
	watchFlags.output = ""
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args, watchFlags.output)
	if err != nil {
		return err
	}
	defer s.closeLog()

	if s.outputPath() == stdoutPath {
		return fmt.Errorf("%w: watch cannot write to stdout; pass a file to --output", cadpost.ErrUsage)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	executor := retry.NewExecutor(
		retry.NewInputErrorClassifier(),
		retry.NewExponentialBackoff(watchRetries, retry.WithInitialDelay(s.settings.WatchDebounce)),
	).WithOnRetry(func(attempt int, err error, delay time.Duration) {
		s.logger.Verbose("Inputs not ready (%v), retry %d/%d in %s", err, attempt+1, watchRetries, delay)
	})

	regenerate := func() {
		err := executor.Execute(ctx, func(context.Context) error {
			_, err := s.convert(cmd.OutOrStdout())
			return err
		})
		if err != nil && ctx.Err() == nil {
			s.logger.Error("Conversion failed: %v", err)
		}
	}

	w, err := watcher.New(s.dir, cadpost.InputFiles, s.settings.WatchDebounce, s.logger)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}
	defer w.Stop()

	regenerate()

	if err := w.Start(ctx, func(files []string) {
		s.logger.Info("Changed: %s", strings.Join(files, ", "))
		regenerate()
	}); err != nil {
		return err
	}

	s.logger.Info("Watching %s (debounce %s)", s.dir, s.settings.WatchDebounce)
	<-ctx.Done()
	s.logger.Verbose("Stopping watcher")
	return nil
}
