package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgdot/pkg/errors"
	orgio "github.com/matzehuels/orgdot/pkg/io"
	"github.com/matzehuels/orgdot/pkg/org"
	"github.com/matzehuels/orgdot/pkg/schema"
)

// validateCommand checks organization files against the JSON Schema and the
// referential rules. It fails when any file is invalid.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <files...>",
		Short: "Check organization files for schema and reference errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd.OutOrStdout())
			invalid := 0
			for _, path := range args {
				problems, err := validateFile(path)
				if err != nil {
					p.failure("%s: %s", path, errors.UserMessage(err))
					invalid++
					continue
				}
				if len(problems) > 0 {
					p.failure("%s", path)
					for _, msg := range problems {
						p.detail("%s", msg)
					}
					invalid++
					continue
				}
				p.success("%s", path)
			}
			if invalid > 0 {
				return errors.New(errors.ErrCodeInvalidOrganization, "%d of %d file(s) invalid", invalid, len(args))
			}
			return nil
		},
	}
}

// validateFile returns the problems found in path. Files that cannot be read
// or decoded are reported as an error instead.
func validateFile(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
		}
		if err := schema.Validate(data); err != nil {
			if errors.Is(err, errors.ErrCodeInvalidOrganization) {
				return []string{err.Error()}, nil
			}
			return nil, err
		}
	}

	o, err := orgio.Import(path)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		// YAML and TOML are checked in their normalized JSON form.
		var buf bytes.Buffer
		if err := orgio.WriteJSON(o, &buf); err != nil {
			return nil, err
		}
		if err := schema.Validate(buf.Bytes()); err != nil {
			return []string{err.Error()}, nil
		}
	}

	var problems []string
	for _, issue := range org.Validate(o) {
		problems = append(problems, issue.String())
	}
	return problems, nil
}
