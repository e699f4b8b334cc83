// Package tui provides the BubbleTea-based terminal window picker.
// It talks to a running dockpeekd over the session bus: the list shows
// the daemon's current window entries, navigation is optionally mirrored
// to the overlay, and Enter activates the selected window.
package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/dockpeek/dockpeek/internal/config"
	"github.com/dockpeek/dockpeek/internal/dbus"
)

// statusPollInterval is how often the daemon status is refreshed.
const statusPollInterval = 2 * time.Second

// PreviewClient is the subset of the D-Bus client the TUI needs.
type PreviewClient interface {
	Windows() (string, []dbus.WindowInfo, error)
	Status() (dbus.Status, error)
	Cycle() error
	SelectCurrent() error
	Hide() error
}

// Mode represents the current UI mode.
type Mode int

const (
	ModeList Mode = iota
	ModeHelp
)

// Model is the main TUI model.
type Model struct {
	cfg    *config.Config
	client PreviewClient

	mode Mode

	list list.Model
	help help.Model

	// State
	appName string
	windows []dbus.WindowInfo
	status  dbus.Status
	mirror  bool

	// Index the daemon's selection was last mirrored to
	mirrored int

	width  int
	height int
	ready  bool

	keys KeyMap

	statusMsg string
	statusErr bool
}

// windowItem wraps a window for the list component.
type windowItem struct {
	window dbus.WindowInfo
	index  int
}

func (i windowItem) Title() string {
	return i.window.DisplayTitle()
}

func (i windowItem) Description() string {
	if i.window.Thumbnail != "" {
		return i.window.Handle + " · thumbnail ready"
	}
	return i.window.Handle
}

func (i windowItem) FilterValue() string {
	return i.window.Title + " " + i.window.Handle
}

// windowDelegate renders list items, hiding titles when configured off.
type windowDelegate struct {
	list.DefaultDelegate
	showTitles bool
}

func newWindowDelegate(showTitles bool) windowDelegate {
	return windowDelegate{
		DefaultDelegate: list.NewDefaultDelegate(),
		showTitles:      showTitles,
	}
}

func (d windowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	wi, ok := item.(windowItem)
	if !ok || d.showTitles {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	// Titles off: render handle only
	isSelected := index == m.Index()
	style := d.DefaultDelegate.Styles.NormalTitle
	if isSelected {
		style = d.DefaultDelegate.Styles.SelectedTitle
	}
	fmt.Fprint(w, style.Render(wi.window.Handle))
}

// New creates a new TUI model.
func New(cfg *config.Config, client PreviewClient) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	delegate := newWindowDelegate(cfg.TUI.ShowTitles)
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Window Preview"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	return Model{
		cfg:    cfg,
		client: client,
		mode:   ModeList,
		list:   l,
		help:   help.New(),
		mirror: cfg.TUI.MirrorOverlay,
		keys:   DefaultKeyMap(),
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadWindows,
		m.pollStatus(),
	)
}

type windowsMsg struct {
	app     string
	windows []dbus.WindowInfo
	err     error
}

type statusPollMsg struct {
	status dbus.Status
	err    error
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// loadWindows fetches the daemon's window list.
func (m Model) loadWindows() tea.Msg {
	app, windows, err := m.client.Windows()
	return windowsMsg{app: app, windows: windows, err: err}
}

// pollStatus schedules the next daemon status refresh.
func (m Model) pollStatus() tea.Cmd {
	return tea.Tick(statusPollInterval, func(time.Time) tea.Msg {
		status, err := m.client.Status()
		return statusPollMsg{status: status, err: err}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case windowsMsg:
		if msg.err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: "Daemon unreachable: " + msg.err.Error(), isErr: true}
			}
		}
		m.appName = msg.app
		m.windows = msg.windows
		m.mirrored = 0
		m.list.SetItems(m.buildListItems())
		if m.appName != "" {
			m.list.Title = "Window Preview · " + m.appName
		} else {
			m.list.Title = "Window Preview"
		}
		return m, nil

	case statusPollMsg:
		if msg.err == nil {
			changed := msg.status.App != m.status.App ||
				msg.status.WindowCount != m.status.WindowCount
			m.status = msg.status
			if changed {
				return m, tea.Batch(m.loadWindows, m.pollStatus())
			}
		}
		return m, m.pollStatus()

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// When the list filter is active, keys belong to the filter input
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeList
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	}

	if m.mode == ModeHelp {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Select):
		return m, m.activateSelected()

	case key.Matches(msg, m.keys.HideKey):
		return m, func() tea.Msg {
			if err := m.client.Hide(); err != nil {
				return statusMsg{text: "Hide failed: " + err.Error(), isErr: true}
			}
			return statusMsg{text: "Overlay hidden", isErr: false}
		}

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadWindows

	case key.Matches(msg, m.keys.Mirror):
		m.mirror = !m.mirror
		if m.mirror {
			return m, func() tea.Msg {
				return statusMsg{text: "Mirroring to overlay on", isErr: false}
			}
		}
		return m, func() tea.Msg {
			return statusMsg{text: "Mirroring to overlay off", isErr: false}
		}
	}

	// Navigation goes to the list, then the overlay follows
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	if m.mirror {
		if mirrorCmd := m.mirrorSelection(); mirrorCmd != nil {
			return m, tea.Batch(cmd, mirrorCmd)
		}
	}

	return m, cmd
}

// activateSelected asks the daemon to raise the selected window.
// The daemon's selection is synced first so SelectCurrent hits the
// right entry.
func (m *Model) activateSelected() tea.Cmd {
	item, ok := m.list.SelectedItem().(windowItem)
	if !ok {
		return nil
	}

	steps := cycleSteps(m.mirrored, item.index, len(m.windows))
	m.mirrored = item.index

	return func() tea.Msg {
		for range steps {
			if err := m.client.Cycle(); err != nil {
				return statusMsg{text: "Cycle failed: " + err.Error(), isErr: true}
			}
		}
		if err := m.client.SelectCurrent(); err != nil {
			return statusMsg{text: "Activate failed: " + err.Error(), isErr: true}
		}
		return statusMsg{text: "Activated " + item.window.DisplayTitle(), isErr: false}
	}
}

// mirrorSelection drives the overlay's selection to the TUI's. The
// daemon only cycles forward, so the mirror walks the wraparound.
func (m *Model) mirrorSelection() tea.Cmd {
	item, ok := m.list.SelectedItem().(windowItem)
	if !ok {
		return nil
	}

	steps := cycleSteps(m.mirrored, item.index, len(m.windows))
	if steps == 0 {
		return nil
	}
	m.mirrored = item.index

	return func() tea.Msg {
		for range steps {
			if err := m.client.Cycle(); err != nil {
				return statusMsg{text: "Mirror failed: " + err.Error(), isErr: true}
			}
		}
		return nil
	}
}

// cycleSteps returns how many forward cycles move the selection from
// current to target in a list of count entries.
func cycleSteps(current, target, count int) int {
	if count <= 0 {
		return 0
	}
	return ((target - current) % count + count) % count
}

// buildListItems creates list items from the current windows.
func (m Model) buildListItems() []list.Item {
	items := make([]list.Item, len(m.windows))
	for i, w := range m.windows {
		items[i] = windowItem{window: w, index: i}
	}
	return items
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.mode == ModeHelp {
		return m.viewHelp()
	}
	return m.viewList()
}

func (m Model) viewList() string {
	s := m.list.View()

	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		return s + "\n" + statusStyle.Render(m.statusMsg)
	}

	return s + "\n" + m.buildStatusBar()
}

// buildStatusBar renders the daemon status line.
func (m Model) buildStatusBar() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	state := "overlay hidden"
	if m.status.Visible {
		state = fmt.Sprintf("overlay showing %d windows", m.status.WindowCount)
		if m.status.ShownAt > 0 {
			state += " · " + humanize.Time(time.Unix(m.status.ShownAt, 0))
		}
	}

	mirror := "mirror off"
	if m.mirror {
		mirror = "mirror on"
	}

	bar := dim.Render(state+" · "+mirror) + "  " +
		keyStyle.Render("enter") + dim.Render(" activate  ") +
		keyStyle.Render("?") + dim.Render(" help")

	return bar
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	s := titleStyle.Render("Keyboard Shortcuts") + "\n\n"

	s += sectionStyle.Render("Navigation") + "\n"
	s += keyStyle.Render("  j/k, ↑/↓") + "     Move up/down\n"
	s += keyStyle.Render("  g/G") + "          Go to top/bottom\n"
	s += "\n"

	s += sectionStyle.Render("Actions") + "\n"
	s += keyStyle.Render("  enter") + "        Activate selected window\n"
	s += keyStyle.Render("  x") + "            Hide the overlay\n"
	s += keyStyle.Render("  m") + "            Toggle mirroring to overlay\n"
	s += keyStyle.Render("  /") + "            Filter windows\n"
	s += keyStyle.Render("  r") + "            Refresh from daemon\n"
	s += "\n"

	s += sectionStyle.Render("General") + "\n"
	s += keyStyle.Render("  ?") + "            Toggle this help\n"
	s += keyStyle.Render("  q") + "            Quit\n"

	s += "\n" + sectionStyle.Render("Press ? to return")

	return s
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config *config.Config
	Client PreviewClient
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	client := opts.Client
	if client == nil {
		cfg := opts.Config
		if cfg == nil {
			cfg = config.DefaultConfig()
		}
		c, err := dbus.NewClient(cfg.DBus.Timeout.Duration())
		if err != nil {
			return fmt.Errorf("failed to connect to daemon: %w", err)
		}
		client = c
	}

	m := New(opts.Config, client)
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
