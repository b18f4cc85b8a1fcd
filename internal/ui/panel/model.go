// Package panel renders the resource summary of a set of cloud credentials
// as a terminal table.
package panel

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rflorenc/cloud-resource-workbench/internal/enumor"
	"github.com/rflorenc/cloud-resource-workbench/internal/models"
	"github.com/rflorenc/cloud-resource-workbench/internal/ui/theme"
)

// Fetcher loads resource counts aggregated over a set of credentials.
// *cloudclient.Client satisfies it.
type Fetcher interface {
	ResCountsBySecrets(ctx context.Context, vendor enumor.Vendor, secretIDs map[string]string) ([]models.ResourceCount, error)
}

// Props are the panel inputs. They are forwarded to the backend unchecked.
type Props struct {
	SecretIDs map[string]string
	Vendor    enumor.Vendor
}

type Option func(m *Model)

// WithExitOnLoad makes the program quit once the request settles.
func WithExitOnLoad() Option {
	return func(m *Model) {
		m.exitOnLoad = true
	}
}

// WithContext sets the parent context of the request.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.parent = ctx
	}
}

type Model struct {
	fetcher Fetcher
	props   Props
	parent  context.Context
	cancel  context.CancelFunc

	spinner spinner.Model
	keys    keyMap

	mounted    bool
	closed     bool
	exitOnLoad bool
	loading    bool
	rows       []models.ResourceCount
	err        error
	cursor     int
	width      int
}

func New(f Fetcher, props Props, opts ...Option) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Spinner

	m := &Model{
		fetcher: f,
		props:   props,
		parent:  context.Background(),
		spinner: s,
		keys:    newKeyMap(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init starts the single resource count request. Later calls are no-ops.
func (m *Model) Init() tea.Cmd {
	if m.mounted {
		return nil
	}
	m.mounted = true
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m *Model) fetch() tea.Cmd {
	ctx, cancel := context.WithCancel(m.parent)
	m.cancel = cancel
	f, vendor, ids := m.fetcher, m.props.Vendor, m.props.SecretIDs
	return func() tea.Msg {
		items, err := f.ResCountsBySecrets(ctx, vendor, ids)
		return resCountsMsg{items: items, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resCountsMsg:
		if m.closed {
			return m, nil
		}
		m.loading = false
		if m.cancel != nil {
			m.cancel()
		}
		if msg.err != nil {
			m.err = msg.err
			m.rows = nil
		} else {
			m.rows = msg.items
		}
		if m.exitOnLoad {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			m.close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.toggle):
			// the accessed switch is read-only
		}
	}
	return m, nil
}

func (m *Model) close() {
	m.closed = true
	if m.cancel != nil {
		m.cancel()
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("%s resources", m.props.Vendor.Name())))
	if n := len(m.props.SecretIDs); n > 0 {
		b.WriteString(theme.Help.Render(fmt.Sprintf("  (%s)", strings.Join(labels(m.props.SecretIDs), ", "))))
	}
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + " Loading...\n")
		return b.String()
	}

	b.WriteString(m.table())
	if m.err != nil {
		b.WriteString("\n" + theme.Error.Render("Failed to load resources: "+m.err.Error()) + "\n")
	}
	if !m.exitOnLoad {
		b.WriteString("\n" + theme.Help.Render("↑/↓ move • q quit") + "\n")
	}
	return b.String()
}

func (m *Model) table() string {
	cols := Columns()
	cells := make([][]string, len(m.rows))
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = lipgloss.Width(c.Label)
	}
	for r, row := range m.rows {
		cells[r] = make([]string, len(cols))
		for i, c := range cols {
			cells[r][i] = c.Render(row)
			if w := lipgloss.Width(cells[r][i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = pad(c.Label, widths[i])
	}
	var b strings.Builder
	b.WriteString(theme.Header.Render(strings.Join(header, "  ")) + "\n")

	if len(m.rows) == 0 {
		b.WriteString(theme.Disabled.Render("No data") + "\n")
		return b.String()
	}
	for r := range cells {
		parts := make([]string, len(cols))
		for i, c := range cols {
			text := pad(cells[r][i], widths[i])
			switch {
			case c.Disabled:
				parts[i] = theme.Disabled.Render(text)
			case r == m.cursor:
				parts[i] = theme.Selected.Render(text)
			default:
				parts[i] = theme.Cell.Render(text)
			}
		}
		b.WriteString(strings.Join(parts, "  ") + "\n")
	}
	return b.String()
}

// Rows returns the loaded rows; empty while loading or after a failure.
func (m *Model) Rows() []models.ResourceCount { return m.rows }

func (m *Model) Loading() bool { return m.loading }

func (m *Model) Err() error { return m.err }

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func labels(ids map[string]string) []string {
	out := make([]string, 0, len(ids))
	for k := range ids {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
