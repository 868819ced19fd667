// Package retry re-runs an operation with exponential backoff while its
// error is classified as transient.
//
// The watch command uses it to ride out the window in which an analysis
// tool is still rewriting its output: a document that is briefly missing or
// truncated fails to parse, and a later attempt usually succeeds.
//
// # Example Usage
//
//	executor := retry.NewExecutor(retry.NewInputErrorClassifier(), retry.NewExponentialBackoff(3))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return convert()
//	})
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. Use WithOnRetry() to create
// independent configurations per goroutine.
package retry
