package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgdot/pkg/errors"
	orgio "github.com/matzehuels/orgdot/pkg/io"
	"github.com/matzehuels/orgdot/pkg/org"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// Organization Files
// =============================================================================

// orgFile is one organization file found by scanOrgFiles.
type orgFile struct {
	Path      string
	Name      string // organization name, empty when the file failed to load
	Entities  int
	Relations int
	Issues    int
	Err       error
	ModTime   time.Time
}

// loadable reports whether the file decoded into an organization.
func (f orgFile) loadable() bool { return f.Err == nil }

// scanOrgFiles loads every organization file directly inside dir, sorted by
// path. Files that fail to decode are kept with Err set.
func scanOrgFiles(dir string) ([]orgFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", dir)
	}

	var files []orgFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if _, err := orgio.FormatFromPath(path); err != nil {
			continue
		}
		f := orgFile{Path: path}
		if info, err := e.Info(); err == nil {
			f.ModTime = info.ModTime()
		}
		o, err := orgio.Import(path)
		if err != nil {
			f.Err = err
		} else {
			f.Name = o.Name
			f.Entities = o.EntityCount()
			f.Relations = len(o.Relationships)
			f.Issues = len(org.Validate(o))
		}
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// =============================================================================
// FileListModel - Interactive organization file selection
// =============================================================================

// FileListModel is the bubbletea model for picking an organization file.
type FileListModel struct {
	Files    []orgFile
	Cursor   int
	Selected *orgFile
	Height   int
	Offset   int
}

// NewFileListModel creates a new file list model.
func NewFileListModel(files []orgFile) FileListModel {
	return FileListModel{Files: files, Height: 15}
}

func (m FileListModel) Init() tea.Cmd {
	return nil
}

func (m FileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Files) == 0 {
				return m, nil
			}
			f := m.Files[m.Cursor]
			if !f.loadable() {
				return m, nil
			}
			m.Selected = &f
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m FileListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Organization"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ compile  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Files))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		f := m.Files[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		name, entities, rels, status := "—", "—", "—", "unreadable"
		if f.loadable() {
			name = f.Name
			entities = strconv.Itoa(f.Entities)
			rels = strconv.Itoa(f.Relations)
			status = "✓"
			if f.Issues > 0 {
				status = fmt.Sprintf("%d issues", f.Issues)
			}
		}
		rows = append(rows, []string{cursor, filepath.Base(f.Path), name, entities, rels, status, formatRelativeTime(f.ModTime)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "File", "Organization", "Entities", "Relations", "Valid", "Modified").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Files) {
				return lipgloss.NewStyle()
			}
			f := m.Files[idx]
			base := lipgloss.NewStyle()
			if idx == m.Cursor {
				base = base.Bold(true)
			}
			switch {
			case !f.loadable():
				return base.Foreground(colorRed)
			case col == 5 && f.Issues > 0:
				return base.Foreground(colorYellow)
			case idx == m.Cursor:
				return base.Foreground(colorGreen)
			case col == 6:
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.Files) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Files))))
	}
	return b.String()
}

// =============================================================================
// Browse Command
// =============================================================================

// browseCommand lists the organization files in a directory, and compiles the
// one the user picks to <name>.dot next to it.
func (c *CLI) browseCommand() *cobra.Command {
	var flags dotFlags

	cmd := &cobra.Command{
		Use:   "browse [dir]",
		Short: "Pick an organization file interactively and compile it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			files, err := scanOrgFiles(dir)
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			if len(files) == 0 {
				p.warning("No organization files in %s", dir)
				return nil
			}

			final, err := tea.NewProgram(NewFileListModel(files), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			sel := final.(FileListModel).Selected
			if sel == nil {
				return nil
			}

			opts := dotOpts{dotFlags: flags}
			opts.output = strings.TrimSuffix(sel.Path, filepath.Ext(sel.Path)) + ".dot"
			runner, _, err := c.newRunner(cmd.Context(), memoryStore, nil)
			if err != nil {
				return err
			}
			defer runner.Close()
			return c.compileOne(cmd, runner, sel.Path, opts)
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
