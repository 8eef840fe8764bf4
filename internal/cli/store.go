package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgdot/pkg/errors"
	"github.com/matzehuels/orgdot/pkg/pipeline"
)

// storeCommand manages published DOT documents in the configured store.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage DOT documents in the configured store",
		Long: `Manage DOT documents in the configured store.

The backend (file, sqlite, redis, mongo or memory) comes from the storage
section of orgdot.yaml or the ORGDOT_STORAGE_* environment variables.`,
	}

	cmd.AddCommand(c.storeSaveCommand())
	cmd.AddCommand(c.storeLoadCommand())
	cmd.AddCommand(c.storeDeleteCommand())
	cmd.AddCommand(c.storeExistsCommand())
	return cmd
}

// withStore runs fn with a runner over the configured store.
func (c *CLI) withStore(cmd *cobra.Command, fn func(*pipeline.Runner) error) error {
	runner, _, err := c.newRunner(cmd.Context(), configuredStore, nil)
	if err != nil {
		return err
	}
	defer runner.Close()
	return fn(runner)
}

func (c *CLI) storeSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <file.dot>",
		Short: "Store a DOT file under name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", args[1])
			}
			return c.withStore(cmd, func(r *pipeline.Runner) error {
				key, err := r.Publish(cmd.Context(), args[0], string(data))
				if err != nil {
					return err
				}
				p := newPrinter(cmd.OutOrStdout())
				p.success("Saved %s", args[0])
				p.keyValue("key", key)
				return nil
			})
		},
	}
}

func (c *CLI) storeLoadCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "load <name>",
		Short: "Print a stored DOT document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(r *pipeline.Runner) error {
				src, err := r.Fetch(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), output, []byte(src))
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a stored DOT document",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(r *pipeline.Runner) error {
				if err := r.Remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				newPrinter(cmd.OutOrStdout()).success("Deleted %s", args[0])
				return nil
			})
		},
	}
}

func (c *CLI) storeExistsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exists <name>",
		Short: "Report whether a DOT document is stored; fails when it is not",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(r *pipeline.Runner) error {
				ok, err := r.Has(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", args[0])
				}
				newPrinter(cmd.OutOrStdout()).success("%s exists", args[0])
				return nil
			})
		},
	}
}
