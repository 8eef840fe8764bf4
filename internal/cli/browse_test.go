package cli

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestScanOrgFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", acmeJSON)
	writeFile(t, dir, "a.json", danglingJSON)
	writeFile(t, dir, "c.yaml", "name: [unclosed")
	writeFile(t, dir, "notes.txt", "ignored")

	files, err := scanOrgFiles(dir)
	if err != nil {
		t.Fatalf("scanOrgFiles() error = %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("scanOrgFiles() found %d files, want 3: %+v", len(files), files)
	}

	a, b, c := files[0], files[1], files[2]
	if filepath.Base(a.Path) != "a.json" || a.Issues == 0 {
		t.Errorf("a.json = %+v, want issues", a)
	}
	if b.Name != "Acme" || b.Entities != 2 || b.Relations != 1 || b.Issues != 0 {
		t.Errorf("b.json = %+v", b)
	}
	if c.loadable() {
		t.Errorf("c.yaml should not be loadable: %+v", c)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m FileListModel, keys ...string) (FileListModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(FileListModel)
	}
	return m, cmd
}

func TestFileListModel(t *testing.T) {
	files := []orgFile{
		{Path: "a.json", Name: "A", Entities: 1},
		{Path: "broken.yaml", Err: errTest},
		{Path: "c.json", Name: "C", Entities: 3},
	}

	m, _ := press(NewFileListModel(files), "down", "down", "down")
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want clamp at 2", m.Cursor)
	}
	m, _ = press(m, "up", "k", "k")
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want clamp at 0", m.Cursor)
	}

	m, cmd := press(m, "j", "enter")
	if m.Selected != nil || cmd != nil {
		t.Error("selecting an unreadable file should do nothing")
	}

	m, cmd = press(m, "j", "enter")
	if m.Selected == nil || m.Selected.Path != "c.json" {
		t.Fatalf("selected = %+v, want c.json", m.Selected)
	}
	if cmd == nil {
		t.Error("enter on a readable file should quit")
	}
}

func TestFileListModelScrolls(t *testing.T) {
	files := make([]orgFile, 10)
	for i := range files {
		files[i] = orgFile{Path: string(rune('a'+i)) + ".json"}
	}
	m := NewFileListModel(files)
	m.Height = 3

	m, _ = press(m, "down", "down", "down", "down")
	if m.Cursor != 4 || m.Offset != 2 {
		t.Errorf("cursor/offset = %d/%d, want 4/2", m.Cursor, m.Offset)
	}
	if view := m.View(); !strings.Contains(view, "[5/10]") || strings.Contains(view, "a.json") {
		t.Errorf("view does not reflect scrolling:\n%s", view)
	}
}

func TestFileListModelQuit(t *testing.T) {
	m, cmd := press(NewFileListModel(nil), "q")
	if m.Selected != nil || cmd == nil {
		t.Error("q should quit without a selection")
	}
	if _, cmd := press(NewFileListModel(nil), "enter"); cmd != nil {
		t.Error("enter on an empty list should not quit")
	}
}

func TestFormatRelativeTime(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, "—"},
		{time.Now().Add(-10 * time.Second), "just now"},
		{time.Now().Add(-5*time.Minute - time.Second), "5m ago"},
		{time.Now().Add(-3*time.Hour - time.Minute), "3h ago"},
		{time.Now().Add(-50 * time.Hour), "2d ago"},
		{time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), "Mar 1, 2020"},
	}
	for _, tt := range tests {
		if got := formatRelativeTime(tt.t); got != tt.want {
			t.Errorf("formatRelativeTime(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

var errTest = testError("unreadable")

type testError string

func (e testError) Error() string { return string(e) }
