package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgdot/internal/cli"
	orgerrors "github.com/matzehuels/orgdot/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// exitCode is 2 for bad input, 3 for infrastructure failures and 1 otherwise.
func exitCode(err error) int {
	switch orgerrors.GetCode(err) {
	case orgerrors.ErrCodeInvalidInput, orgerrors.ErrCodeInvalidConfig, orgerrors.ErrCodeInvalidFormat,
		orgerrors.ErrCodeInvalidLayout, orgerrors.ErrCodeInvalidKey, orgerrors.ErrCodeInvalidOrganization:
		return 2
	case orgerrors.ErrCodeStorage, orgerrors.ErrCodeTimeout:
		return 3
	}
	return 1
}
