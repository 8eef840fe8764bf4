package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgdot/pkg/dot"
	"github.com/matzehuels/orgdot/pkg/errors"
	"github.com/matzehuels/orgdot/pkg/render"
)

type renderOpts struct {
	dotFlags
	output  string // base path; the format is appended as extension
	formats string
	refresh bool
	noCache bool
}

// renderCommand renders an organization or DOT file to images.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render an organization or DOT file with Graphviz",
		Long: `Render an organization file, or DOT source (.dot, .gv), to SVG, PNG or JPG.

Rendered images are cached in the configured store by DOT content, so
re-rendering an unchanged organization is instant. Use --refresh to bypass
the cache.`,
		Example: `  orgdot render acme.json
  orgdot render acme.json -f svg,png -o build/acme
  orgdot render acme.dot --refresh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	opts.dotFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: input name)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "svg", "output formats: svg, png, jpg (comma-separated)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when a cached image exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the artifact cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	formats, err := parseFormats(opts.formats)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	mode := cacheStore
	if opts.noCache {
		mode = memoryStore
	}
	runner, _, err := c.newRunner(ctx, mode, nil)
	if err != nil {
		return err
	}
	defer runner.Close()

	base := opts.output
	if base == "" {
		base = baseName(input)
	}

	spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Rendering "+input+"...")
	spinner.Start()
	prog := newProgress(c.Logger)

	var (
		artifacts map[render.Format][]byte
		cached    bool
		summary   *dot.Summary
	)
	if isDOTFile(input) {
		data, rerr := os.ReadFile(input)
		if rerr != nil {
			spinner.Stop()
			return errors.Wrap(errors.ErrCodeInvalidInput, rerr, "read %s", input)
		}
		artifacts, cached, err = runner.Render(ctx, string(data), formats)
	} else {
		o, rerr := readOrganization(input, cmd.InOrStdin())
		if rerr != nil {
			spinner.Stop()
			return rerr
		}
		popts, oerr := opts.dotFlags.options(o)
		if oerr != nil {
			spinner.Stop()
			return oerr
		}
		popts.Formats = formats
		popts.Refresh = opts.refresh
		res, xerr := runner.Execute(ctx, popts)
		if xerr == nil {
			artifacts, cached, summary = res.Artifacts, res.CacheHit, &res.Summary
		}
		err = xerr
	}
	spinner.Stop()

	p := newPrinter(cmd.ErrOrStderr())
	if err != nil {
		if spinner.Cancelled() {
			p.warning("Cancelled")
			return ctx.Err()
		}
		if rerr, ok := render.AsError(err); ok {
			p.failure("Graphviz rejected %s", input)
			for _, d := range rerr.Diagnostics {
				p.detail("%s: %s", strings.ToLower(d.Level.String()), d.Message)
			}
		}
		return err
	}

	var written []string
	for _, f := range formats {
		out := base + "." + string(f)
		if err := writeOutput(cmd.OutOrStdout(), out, artifacts[f]); err != nil {
			return err
		}
		written = append(written, out)
	}
	prog.done(fmt.Sprintf("Rendered %s", input))

	p.success("Rendered %s", input)
	if summary != nil {
		p.stats(*summary, &cached)
	} else if cached {
		p.detail(iconCached)
	}
	for _, out := range written {
		p.file(out)
	}
	return nil
}
