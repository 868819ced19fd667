package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/cadpost/pkg/cadpost"
)

// OptionalInputDir accepts zero or one <dir> argument.
// Errors wrap cadpost.ErrUsage.
func OptionalInputDir(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf(`%w: accepts at most 1 arg(s), received %d

Usage: %s

Example:
  %s ./analysis_output`, cadpost.ErrUsage, len(args), cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
