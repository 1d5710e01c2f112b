package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/henri123lemoine/gallery/internal/catalog"
	"github.com/henri123lemoine/gallery/internal/compose"
	"github.com/henri123lemoine/gallery/internal/config"
	"github.com/henri123lemoine/gallery/internal/debug"
	"github.com/henri123lemoine/gallery/internal/imageloader"
	"github.com/henri123lemoine/gallery/internal/ui"
	"github.com/henri123lemoine/gallery/internal/widgets"
)

// State represents the current UI state.
type State int

const (
	StateDemo State = iota
	StatePicker
	StateHelp
)

// Deps are the collaborators the model cannot build from config alone.
type Deps struct {
	// Loader fetches images for the image demo. Nil makes every image fail.
	Loader imageloader.Loader
	// Snapshot is saveable state read back from a previous run.
	Snapshot compose.Snapshot
	// Clock drives animations. Nil uses the wall clock.
	Clock func() time.Time
	// Random feeds the recomposition demo. Nil uses math/rand.
	Random func() float64
}

// Model is the main application model.
type Model struct {
	// Configuration
	config   *config.Config
	settings catalog.Settings

	// Composition
	tree     *compose.Tree
	demo     catalog.Demo
	content  compose.Content
	frame    string
	remounts uint64
	ticking  bool
	toasts   *toaster

	// State
	state   State
	err     error
	toast   string
	toastID int

	// Picker
	pickerInput textinput.Model
	pickerItems []catalog.Demo
	cursor      int
	viewOffset  int

	// UI
	width   int
	height  int
	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	// Exit behavior
	shouldQuit bool
	initCmd    tea.Cmd

	// Headless models hold producer commands for RenderFrame and never
	// schedule timers.
	headless bool
	held     []tea.Cmd
}

// New creates a new Model with the configured demo mounted and composed.
func New(cfg *config.Config, deps Deps) (Model, error) {
	return create(cfg, deps, false)
}

func create(cfg *config.Config, deps Deps, headless bool) (Model, error) {
	theme, err := ui.Resolve(cfg.UI.Theme)
	if err != nil {
		return Model{}, err
	}

	id := cfg.General.Demo
	if id == "" {
		id = catalog.DefaultID
	}
	demo, err := catalog.Lookup(id)
	if err != nil {
		return Model{}, err
	}

	opts := []compose.Option{compose.WithLogger(debug.Logger("compose"))}
	if deps.Snapshot != nil {
		opts = append(opts, compose.WithSnapshot(deps.Snapshot))
	}
	if deps.Clock != nil {
		opts = append(opts, compose.WithClock(deps.Clock))
	}
	tree := compose.NewTree(opts...)

	// Create text inputs
	pickerInput := textinput.New()
	pickerInput.Placeholder = "filter..."
	pickerInput.CharLimit = 50

	spin := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Palette.Primary)),
	)

	m := Model{
		config: cfg,
		settings: catalog.Settings{
			ImageURL:              cfg.Image.URL,
			ItemCount:             cfg.List.ItemCount,
			LegacyLoadingCallback: cfg.Behavior.LegacyLoadingCallback,
			Random:                deps.Random,
		},
		tree:        tree,
		demo:        demo,
		toasts:      &toaster{},
		state:       StateDemo,
		pickerInput: pickerInput,
		width:       80,
		height:      24,
		keys:        KeyMapFromConfig(&cfg.Keys),
		help:        help.New(),
		spinner:     spin,
		headless:    headless,
	}
	m.content = demo.Content(m.settings)

	compose.Provide(tree, ui.LocalTheme, theme)
	compose.Provide(tree, widgets.LocalImageLoader, deps.Loader)
	compose.Provide[widgets.Toaster](tree, widgets.LocalToaster, m.toasts)

	m.initCmd = m.recompose()
	debug.Log("mounted %s", demo.ID)
	return m, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.spinner.Tick)
}

// Update handles messages. Every message ends with a recompose, which only
// re-runs the scopes that message invalidated.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = max(msg.Width-6, 0)

	case tea.KeyMsg:
		// Handle force quit globally
		if key.Matches(msg, m.keys.ForceQuit) {
			return m.quit()
		}
		var quit bool
		cmd, quit = m.handleKeyPress(msg)
		if quit {
			return m.quit()
		}

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)

	case compose.FrameMsg:
		m.ticking = false
		m.tree.Tick()

	case compose.ProducedMsg:
		if !m.tree.Deliver(msg) {
			debug.Log("dropped result for %s", msg.Key)
		}

	case ToastExpiredMsg:
		if msg.ID == m.toastID {
			m.toast = ""
		}

	case SnapshotSavedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			debug.Log("saving state to %s: %v", msg.Path, msg.Err)
		}
		return m, nil
	}

	return m, tea.Batch(cmd, m.recompose())
}

// recompose provides the ambient values and brings the tree up to date.
func (m *Model) recompose() tea.Cmd {
	w, h := m.bodySize()
	compose.Provide(m.tree, widgets.LocalViewport, widgets.Viewport{Width: w, Height: h})
	compose.Provide(m.tree, widgets.LocalSpinner, m.spinner.View())
	m.frame = settle(m.tree, m.demo.Key(), m.content)

	produced := m.tree.TakeCmd()
	if m.headless {
		if produced != nil {
			m.held = append(m.held, produced)
		}
		for _, text := range m.toasts.drain() {
			m.toast = text
		}
		return nil
	}

	cmds := []tea.Cmd{produced}
	for _, text := range m.toasts.drain() {
		m.toastID++
		m.toast = text
		cmds = append(cmds, expireToast(m.toastID))
	}
	if m.tree.Animating() && !m.ticking {
		m.ticking = true
		cmds = append(cmds, compose.NextFrame())
	}
	return tea.Batch(cmds...)
}

// composeRounds bounds how many Compose calls one update may take.
const composeRounds = 4

// settle composes until no state change is left waiting, so changes made by
// effects reach the frame before it is shown.
func settle(tree *compose.Tree, key compose.Key, content compose.Content) string {
	frame := tree.Compose(key, content)
	for round := 1; tree.NeedsCompose(); round++ {
		if round >= composeRounds {
			debug.Log("composition of %s still pending after %d rounds", key, round)
			break
		}
		frame = tree.Compose(key, content)
	}
	return frame
}

func (m Model) bodySize() (int, int) {
	return ui.BodySize(m.width, m.height, m.config.UI.ShowHints)
}

// handleKeyPress handles key presses based on current state and reports
// whether the key asked to quit.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch m.state {
	case StatePicker:
		return m.handlePickerKeys(msg), false
	case StateHelp:
		// Any key closes help
		m.state = StateDemo
		return nil, false
	}
	return m.handleDemoKeys(msg)
}

// handleDemoKeys handles key presses while a demo is shown.
func (m *Model) handleDemoKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	// A text field keeps everything but focus movement
	if m.tree.CapturesText() {
		switch {
		case key.Matches(msg, m.keys.NextFocus), msg.Type == tea.KeyEsc:
			m.tree.FocusNext()
		case key.Matches(msg, m.keys.PrevFocus):
			m.tree.FocusPrev()
		default:
			m.tree.HandleKey(msg)
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return nil, true
	case key.Matches(msg, m.keys.Help):
		m.state = StateHelp
	case key.Matches(msg, m.keys.Picker):
		return m.openPicker(), false
	case key.Matches(msg, m.keys.NextFocus):
		m.tree.FocusNext()
	case key.Matches(msg, m.keys.PrevFocus):
		m.tree.FocusPrev()
	case key.Matches(msg, m.keys.Remount):
		m.tree.Remount()
		m.remounts++
		m.err = nil
		debug.Log("remount %s #%d", m.demo.ID, m.remounts)
	case key.Matches(msg, m.keys.Redraw):
		m.tree.Invalidate()
	case key.Matches(msg, m.keys.Click):
		if !m.tree.Click() {
			m.tree.HandleKey(msg)
		}
	default:
		m.tree.HandleKey(msg)
	}
	return nil, false
}

func (m *Model) openPicker() tea.Cmd {
	m.state = StatePicker
	m.pickerInput.Reset()
	m.applyFilter()
	m.cursor = 0
	for i, d := range m.pickerItems {
		if d.ID == m.demo.ID {
			m.cursor = i
		}
	}
	m.ensureVisible()
	return m.pickerInput.Focus()
}

// handlePickerKeys handles key presses in the demo picker.
func (m *Model) handlePickerKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.state = StateDemo
		m.pickerInput.Blur()
		return nil
	case key.Matches(msg, m.keys.Confirm):
		if m.cursor < len(m.pickerItems) {
			m.mount(m.pickerItems[m.cursor])
		}
		m.state = StateDemo
		m.pickerInput.Blur()
		return nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureVisible()
		return nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.pickerItems)-1 {
			m.cursor++
		}
		m.ensureVisible()
		return nil
	}

	var cmd tea.Cmd
	m.pickerInput, cmd = m.pickerInput.Update(msg)
	m.applyFilter()
	return cmd
}

// applyFilter filters demos based on the picker input using fuzzy matching.
func (m *Model) applyFilter() {
	m.pickerItems = catalog.Filter(m.pickerInput.Value())

	// Ensure cursor is in bounds
	if m.cursor >= len(m.pickerItems) {
		m.cursor = len(m.pickerItems) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

func (m Model) pickerVisibleCount() int {
	// Header, divider, footer divider, help and the box take 8 lines; each
	// entry takes two.
	return max((m.height-8)/2, 1)
}

func (m *Model) ensureVisible() {
	visible := m.pickerVisibleCount()
	if m.cursor < m.viewOffset {
		m.viewOffset = m.cursor
	}
	if m.cursor >= m.viewOffset+visible {
		m.viewOffset = m.cursor - visible + 1
	}
	if m.viewOffset > len(m.pickerItems)-visible {
		m.viewOffset = max(len(m.pickerItems)-visible, 0)
	}
}

// mount replaces the tree with a new demo. Saveable state of the previous
// demo is discarded.
func (m *Model) mount(d catalog.Demo) {
	m.tree.Reset()
	m.demo = d
	m.content = d.Content(m.settings)
	m.remounts = 0
	m.err = nil
	debug.Log("mounted %s", d.ID)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.shouldQuit = true
	if m.config.State.Persist {
		return m, tea.Sequence(saveSnapshot(m.config.StatePath(), m.tree.Snapshot()), tea.Quit)
	}
	return m, tea.Quit
}

// View renders the UI.
func (m Model) View() string {
	w, h := m.bodySize()

	items := make([]ui.PickerEntry, len(m.pickerItems))
	for i, d := range m.pickerItems {
		items[i] = ui.PickerEntry{ID: d.ID, Title: d.Title, Description: d.Description}
	}

	return ui.Render(ui.RenderParams{
		State:        int(m.state),
		Width:        m.width,
		Height:       m.height,
		DemoID:       m.demo.ID,
		DemoTitle:    m.demo.Title,
		DemoHint:     m.demo.Hint,
		Body:         fitBody(m.frame, w, h),
		Err:          m.err,
		Toast:        m.toast,
		Generation:   m.remounts,
		Focused:      string(m.tree.Focused()),
		ShowHints:    m.config.UI.ShowHints,
		Footer:       m.help.ShortHelpView(m.keys.ShortHelp()),
		PickerInput:  m.pickerInput.View(),
		PickerItems:  items,
		Cursor:       m.cursor,
		ViewOffset:   m.viewOffset,
		VisibleCount: m.pickerVisibleCount(),
		HelpSections: m.keys.HelpSections(),
	})
}

// fitBody crops a frame to the body area, padding short frames so the
// chrome does not jump while a demo animates.
func fitBody(frame string, width, height int) string {
	lines := strings.Split(frame, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "")
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// ShouldQuit returns true if the app should quit.
func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Demo returns the mounted demo.
func (m Model) Demo() catalog.Demo {
	return m.demo
}

// Frame returns the last composed demo output without chrome.
func (m Model) Frame() string {
	return m.frame
}

// Tree exposes the composition, mostly for tests.
func (m Model) Tree() *compose.Tree {
	return m.tree
}

// Toast returns the toast currently shown.
func (m Model) Toast() string {
	return m.toast
}

// Err returns the error currently shown.
func (m Model) Err() error {
	return m.err
}
