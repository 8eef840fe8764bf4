package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/orgdot/pkg/errors"
	"github.com/matzehuels/orgdot/pkg/pipeline"
)

type dotOpts struct {
	dotFlags
	output  string
	publish string
}

// dotCommand compiles organization files to DOT source.
//
// A single input is written to stdout unless -o is given. Several inputs are
// compiled concurrently into <output dir>/<name>.dot.
func (c *CLI) dotCommand() *cobra.Command {
	opts := dotOpts{}

	cmd := &cobra.Command{
		Use:   "dot [files...]",
		Short: "Compile organization files to Graphviz DOT",
		Long: `Compile organization files (JSON, YAML or TOML) to Graphviz DOT source.

With no files, the organization is read as JSON from stdin.`,
		Example: `  orgdot dot acme.json
  orgdot dot acme.yaml -o acme.dot --layout clustered
  orgdot dot teams/*.json -o out/
  orgdot dot acme.json --publish acme.dot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			if len(args) > 1 && opts.publish != "" {
				return errors.New(errors.ErrCodeInvalidInput, "--publish needs a single input")
			}
			mode := memoryStore
			if opts.publish != "" {
				mode = configuredStore
			}
			runner, _, err := c.newRunner(cmd.Context(), mode, nil)
			if err != nil {
				return err
			}
			defer runner.Close()

			if len(args) == 1 {
				return c.compileOne(cmd, runner, args[0], opts)
			}
			return c.compileMany(cmd, runner, args, opts)
		},
	}

	opts.dotFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, or directory for several inputs")
	cmd.Flags().StringVar(&opts.publish, "publish", "", "also store the DOT source under this document name")

	return cmd
}

func (c *CLI) compileOne(cmd *cobra.Command, runner *pipeline.Runner, input string, opts dotOpts) error {
	prog := newProgress(c.Logger)
	res, err := c.compileFile(cmd, runner, input, opts)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), opts.output, []byte(res.DOT)); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Compiled %s", input))
	if opts.output == "" {
		return nil
	}

	p := newPrinter(cmd.ErrOrStderr())
	p.success("Compiled %s", input)
	p.stats(res.Summary, nil)
	p.file(opts.output)
	if res.DocumentKey != "" {
		p.keyValue("document", res.DocumentKey)
	}
	p.nextStep("Render it", "orgdot render "+opts.output)
	return nil
}

func (c *CLI) compileMany(cmd *cobra.Command, runner *pipeline.Runner, inputs []string, opts dotOpts) error {
	dir := opts.output
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create output dir")
	}

	prog := newProgress(c.Logger)
	p := newPrinter(cmd.ErrOrStderr())

	var mu sync.Mutex
	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())
	for _, input := range inputs {
		g.Go(func() error {
			res, err := c.compileFile(cmd, runner, input, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			out := filepath.Join(dir, baseName(input)+".dot")
			if err := os.WriteFile(out, []byte(res.DOT), 0o644); err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			mu.Lock()
			p.file(out)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Compiled %d files", len(inputs)))
	return nil
}

func (c *CLI) compileFile(cmd *cobra.Command, runner *pipeline.Runner, input string, opts dotOpts) (*pipeline.Result, error) {
	o, err := readOrganization(input, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	popts, err := opts.dotFlags.options(o)
	if err != nil {
		return nil, err
	}
	popts.Publish = opts.publish
	return runner.Execute(cmd.Context(), popts)
}
