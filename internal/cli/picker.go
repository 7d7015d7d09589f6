package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkuehn/vitae/pkg/profile"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// candidate is a YAML file in the working directory that may be a profile.
type candidate struct {
	Path  string
	Name  string // profile owner name, "" when the file does not validate
	Valid bool
}

// findProfiles lists YAML files in dir, probing each against the profile
// schema so the picker can mark which ones are renderable.
func findProfiles(dir string) ([]string, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}

// probeProfiles loads each path best-effort to annotate the picker rows.
func probeProfiles(paths []string) []candidate {
	out := make([]candidate, len(paths))
	for i, p := range paths {
		out[i] = candidate{Path: p}
		if prof, err := profile.Load(p); err == nil {
			out[i].Name = prof.Name
			out[i].Valid = true
		}
	}
	return out
}

// pickProfile runs an interactive selection over the candidate files and
// returns the chosen path.
func pickProfile(paths []string) (string, error) {
	model := NewProfileListModel(probeProfiles(paths))
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(ProfileListModel)
	if !ok || m.Selected == nil {
		return "", fmt.Errorf("no profile selected")
	}
	return m.Selected.Path, nil
}

// =============================================================================
// ProfileListModel - Interactive profile selection
// =============================================================================

// ProfileListModel is the bubbletea model for interactive profile selection.
type ProfileListModel struct {
	Candidates []candidate
	Cursor     int
	Selected   *candidate
}

// NewProfileListModel creates a new profile list model.
func NewProfileListModel(candidates []candidate) ProfileListModel {
	return ProfileListModel{Candidates: candidates}
}

func (m ProfileListModel) Init() tea.Cmd {
	return nil
}

func (m ProfileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Candidates)-1 {
				m.Cursor++
			}
		case "enter":
			c := m.Candidates[m.Cursor]
			if !c.Valid {
				return m, nil
			}
			m.Selected = &c
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ProfileListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Profile"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, c := range m.Candidates {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		var status string
		if c.Valid {
			status = StyleSuccess.Render("*")
		} else {
			status = StyleWarning.Render("!")
		}

		name := c.Name
		if name == "" {
			name = "—"
		}
		line := fmt.Sprintf("%s%s %-25s  %s", cursor, status, filepath.Base(c.Path), listDimStyle.Render(name))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else if !c.Valid {
			b.WriteString(listDimStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s valid profile   %s fails schema validation\n",
		StyleSuccess.Render("*"), StyleWarning.Render("!")))

	return b.String()
}
