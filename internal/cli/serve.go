package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/orgdot/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the orgdot HTTP API. Documents and rendered images are kept in
the configured store; see the storage section of orgdot.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bind := map[string]*pflag.Flag{"server.addr": cmd.Flags().Lookup("addr")}
			runner, s, err := c.newRunner(cmd.Context(), configuredStore, bind)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, server.Options{
				Logger:       c.Logger,
				MaxBodyBytes: s.Server.MaxBodyBytes,
				Timeout:      s.Server.Timeout,
			})
			return srv.ListenAndServe(cmd.Context(), s.Server.Addr)
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address (overrides server.addr)")
	return cmd
}
