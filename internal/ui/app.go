package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/rounal/internal/clipboard"
	"github.com/five82/rounal/internal/config"
	"github.com/five82/rounal/internal/hostinfo"
	"github.com/five82/rounal/internal/journal"
	"github.com/five82/rounal/internal/nav"
	"github.com/five82/rounal/internal/state"
	"github.com/five82/rounal/internal/systemd"
)

// LogFetcher aggregates the journal of one service across all severities.
type LogFetcher interface {
	Fetch(ctx context.Context, service string) (*journal.Store, error)
}

// CatalogFunc reloads the service catalog.
type CatalogFunc func(ctx context.Context) (systemd.Catalog, error)

var errNoLogSource = errors.New("no log source configured")

// Options configures the UI.
type Options struct {
	Context       context.Context
	Catalog       systemd.Catalog
	CatalogErr    error // initial load failure, shown in place of the lists
	Logs          LogFetcher
	Refresh       CatalogFunc
	Store         *state.Store // optional source of background catalog updates
	Clipboard     clipboard.Copier
	Config        config.Config
	ConfigUpdates <-chan config.Config
	Host          hostinfo.Info
	PollTick      time.Duration
	Logger        *zap.Logger
}

// Model is the root application state for Bubble Tea. Interaction state
// lives in nav.State; Model adds widgets and rendering concerns.
type Model struct {
	ctx     context.Context
	logs    LogFetcher
	refresh CatalogFunc
	store   *state.Store
	copier  clipboard.Copier
	updates <-chan config.Config
	logger  *zap.Logger

	keys           keyMap
	state          *nav.State
	theme          Theme
	severityColors map[int]string
	host           hostinfo.Info

	storeVersion uint64
	degraded     bool
	pollTick     time.Duration

	width  int
	height int
	ready  bool

	search  textinput.Model
	spinner spinner.Model
	docs    viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	copier := opts.Clipboard
	if copier == nil {
		copier = clipboard.System{}
	}
	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	st := nav.New(opts.Catalog, opts.Config.DefaultSeverity)
	if opts.CatalogErr != nil {
		st.Apply(nav.Notify{Text: fmt.Sprintf("Could not load services: %v", opts.CatalogErr)})
	}

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "type to search, enter to apply"
	input.CharLimit = 256

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	var version uint64
	if opts.Store != nil {
		version = opts.Store.Snapshot().Version
	}

	return Model{
		ctx:            ctx,
		logs:           opts.Logs,
		refresh:        opts.Refresh,
		store:          opts.Store,
		copier:         copier,
		updates:        opts.ConfigUpdates,
		logger:         logger,
		keys:           DefaultKeyMap(),
		state:          st,
		theme:          GetTheme(opts.Config.Theme).WithSeverityColors(opts.Config.SeverityColors),
		severityColors: opts.Config.SeverityColors,
		host:           opts.Host,
		storeVersion:   version,
		pollTick:       pollTick,
		search:         input,
		spinner:        spin,
		docs:           viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, tickCmd(m.pollTick))
	}
	if m.updates != nil {
		cmds = append(cmds, waitForConfig(m.updates))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.renderDocs()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case logsMsg:
		if msg.err != nil {
			m.logger.Warn("log fetch failed", zap.String("service", msg.service), zap.Error(msg.err))
			return m.apply(nav.LogsFailed{Generation: msg.generation, Err: msg.err})
		}
		m.logger.Debug("logs loaded",
			zap.String("service", msg.service),
			zap.Ints("severities", msg.store.Severities()),
			zap.Int("entries", msg.store.Total()))
		return m.apply(nav.LogsLoaded{Generation: msg.generation, Store: msg.store})

	case catalogMsg:
		if msg.version > m.storeVersion {
			m.storeVersion = msg.version
		}
		if msg.err != nil {
			return m.apply(nav.CatalogFailed{Err: msg.err})
		}
		return m.apply(nav.CatalogLoaded{Catalog: msg.catalog})

	case copyMsg:
		if msg.err != nil {
			m.logger.Warn("copy failed", zap.Error(msg.err))
			return m.apply(nav.Notify{Text: fmt.Sprintf("Copy failed: %v", msg.err)})
		}
		return m.apply(nav.Notify{Text: "Copied message to clipboard"})

	case configMsg:
		if !msg.ok {
			m.updates = nil
			return m, nil
		}
		m.applyConfig(msg.cfg)
		if m.updates == nil {
			return m, nil
		}
		return m, waitForConfig(m.updates)

	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	overlays := m.state.Overlays()
	switch {
	case overlays.Help:
		return m.renderHelp()
	case overlays.Docs:
		return m.renderDocsOverlay()
	case overlays.Detail:
		return m.renderDetail()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.Searching() {
		return m.handleSearchInput(msg)
	}

	if key.Matches(msg, m.keys.CycleTheme) {
		m.theme = GetTheme(NextTheme(m.theme.Name)).WithSeverityColors(m.severityColors)
		m.renderDocs()
		return m, nil
	}

	overlays := m.state.Overlays()
	if overlays.Docs && !overlays.Help {
		if next, cmd, handled := m.handleDocsKey(msg); handled {
			return next, cmd
		}
	}

	action, ok := m.keys.actionFor(msg, m.listHeight()/2)
	if !ok {
		return m, nil
	}

	var focus tea.Cmd
	if _, start := action.(nav.StartSearch); start {
		m.search.SetValue(m.state.Query())
		m.search.CursorEnd()
		focus = m.search.Focus()
	}
	next, cmd := m.apply(action)
	return next, tea.Batch(focus, cmd)
}

// handleSearchInput routes keys to the search box while search mode is on.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m.apply(nav.Quit{})
	case key.Matches(msg, m.keys.Confirm):
		query := m.search.Value()
		m.search.Blur()
		return m.apply(nav.CommitSearch{Query: query})
	case key.Matches(msg, m.keys.Cancel):
		m.search.Blur()
		m.search.Reset()
		return m.apply(nav.CancelSearch{})
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// apply feeds one action to the state machine and runs its effect.
func (m Model) apply(a nav.Action) (Model, tea.Cmd) {
	effect := m.state.Apply(a)
	return m, m.run(effect)
}

// run turns a state machine effect into a command.
func (m Model) run(effect nav.Effect) tea.Cmd {
	switch e := effect.(type) {
	case nav.QuitEffect:
		return tea.Quit
	case nav.FetchLogs:
		m.logger.Debug("fetching logs", zap.String("service", e.Service), zap.Uint64("generation", e.Generation))
		return tea.Batch(m.spinner.Tick, fetchLogsCmd(m.ctx, m.logs, e))
	case nav.Copy:
		return copyCmd(m.copier, e.Text)
	case nav.RefreshCatalog:
		return refreshCatalogCmd(m.ctx, m.refresh, m.store)
	}
	return nil
}

// handleTick picks up catalogs published by the background poller.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	next := tickCmd(m.pollTick)
	if m.store == nil {
		return m, next
	}
	snap := m.store.Snapshot()
	m.degraded = snap.IsDegraded()
	if snap.Version <= m.storeVersion || !snap.HasCatalog {
		return m, next
	}
	m.storeVersion = snap.Version
	m.state.Apply(nav.CatalogLoaded{Catalog: snap.Catalog})
	return m, next
}

func (m *Model) applyConfig(cfg config.Config) {
	m.severityColors = cfg.SeverityColors
	m.theme = GetTheme(cfg.Theme).WithSeverityColors(cfg.SeverityColors)
	m.state.Apply(nav.SetDefaultSeverity{Severity: cfg.DefaultSeverity})
	m.state.Apply(nav.Notify{Text: "Configuration reloaded"})
	m.renderDocs()
	m.logger.Info("configuration applied", zap.String("theme", m.theme.Name))
}

// Messages

type tickMsg time.Time

type logsMsg struct {
	service    string
	generation uint64
	store      *journal.Store
	err        error
}

type catalogMsg struct {
	catalog systemd.Catalog
	version uint64
	err     error
}

type copyMsg struct{ err error }

type configMsg struct {
	cfg config.Config
	ok  bool
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchLogsCmd(ctx context.Context, logs LogFetcher, req nav.FetchLogs) tea.Cmd {
	return func() tea.Msg {
		msg := logsMsg{service: req.Service, generation: req.Generation}
		if logs == nil {
			msg.err = errNoLogSource
			return msg
		}
		fetchCtx, cancel := context.WithTimeout(ctx, LogFetchTimeout)
		defer cancel()
		msg.store, msg.err = logs.Fetch(fetchCtx, req.Service)
		return msg
	}
}

func refreshCatalogCmd(ctx context.Context, refresh CatalogFunc, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		if refresh == nil {
			return catalogMsg{err: errors.New("catalog refresh unavailable")}
		}
		loadCtx, cancel := context.WithTimeout(ctx, CatalogFetchTimeout)
		defer cancel()
		catalog, err := refresh(loadCtx)
		msg := catalogMsg{catalog: catalog, err: err}
		if store != nil {
			msg.version = store.Snapshot().Version
		}
		return msg
	}
}

func copyCmd(copier clipboard.Copier, text string) tea.Cmd {
	return func() tea.Msg {
		return copyMsg{err: copier.Copy(text)}
	}
}

func waitForConfig(updates <-chan config.Config) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-updates
		return configMsg{cfg: cfg, ok: ok}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
