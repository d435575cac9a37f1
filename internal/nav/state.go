package nav

import (
	"fmt"

	"github.com/five82/rounal/internal/journal"
	"github.com/five82/rounal/internal/search"
	"github.com/five82/rounal/internal/systemd"
)

// View is the active browsing list.
type View int

const (
	ViewUnits View = iota
	ViewUnitFiles
)

func (v View) String() string {
	if v == ViewUnitFiles {
		return "Service unit files"
	}
	return "Service units"
}

// Overlays are the independent panels drawn over the main view.
type Overlays struct {
	Help   bool
	Detail bool
	Docs   bool
}

// Any reports whether any overlay is open.
func (o Overlays) Any() bool {
	return o.Help || o.Detail || o.Docs
}

// State is the whole interaction state. The zero value is not ready for
// use; call New.
type State struct {
	view     View
	inLogs   bool
	cursor   int
	severity int
	fallback int // severity restored when logs close

	overlays  Overlays
	searching bool
	query     string

	selected   string
	units      []systemd.ServiceUnit
	unitFiles  []systemd.ServiceUnitFile
	logs       *journal.Store
	loading    bool
	refreshing bool
	generation uint64
	message    string
}

// New returns a browsing state on the unit list.
func New(catalog systemd.Catalog, defaultSeverity int) *State {
	sev := journal.ClampSeverity(defaultSeverity)
	return &State{
		view:      ViewUnits,
		severity:  sev,
		fallback:  sev,
		units:     catalog.Units,
		unitFiles: catalog.UnitFiles,
	}
}

func (s *State) View() View                           { return s.view }
func (s *State) InLogs() bool                         { return s.inLogs }
func (s *State) Cursor() int                          { return s.cursor }
func (s *State) Severity() int                        { return s.severity }
func (s *State) DefaultSeverity() int                 { return s.fallback }
func (s *State) Overlays() Overlays                   { return s.overlays }
func (s *State) Searching() bool                      { return s.searching }
func (s *State) Query() string                        { return s.query }
func (s *State) SelectedService() string              { return s.selected }
func (s *State) Units() []systemd.ServiceUnit         { return s.units }
func (s *State) UnitFiles() []systemd.ServiceUnitFile { return s.unitFiles }
func (s *State) Logs() *journal.Store                 { return s.logs }
func (s *State) Loading() bool                        { return s.loading }
func (s *State) Refreshing() bool                     { return s.refreshing }
func (s *State) Generation() uint64                   { return s.generation }
func (s *State) Message() string                      { return s.message }

// Len returns the length of the collection currently on screen.
func (s *State) Len() int {
	if s.inLogs {
		if s.logs == nil {
			return 0
		}
		return s.logs.Len(s.severity)
	}
	if s.view == ViewUnitFiles {
		return len(s.unitFiles)
	}
	return len(s.units)
}

// SelectedEntry returns the log entry under the cursor.
func (s *State) SelectedEntry() (journal.LogEntry, bool) {
	if !s.inLogs || s.logs == nil {
		return journal.LogEntry{}, false
	}
	return s.logs.Entry(s.severity, s.cursor)
}

// SelectedName returns the unit or unit file name under the cursor.
func (s *State) SelectedName() (string, bool) {
	if s.inLogs || s.cursor >= s.Len() {
		return "", false
	}
	if s.view == ViewUnitFiles {
		return s.unitFiles[s.cursor].Name, true
	}
	return s.units[s.cursor].Name, true
}

// Apply performs one transition and returns the effect it requests.
func (s *State) Apply(a Action) Effect {
	effect := s.apply(a)
	s.clamp()
	return effect
}

func (s *State) apply(a Action) Effect {
	switch a := a.(type) {
	case Quit:
		return QuitEffect{}
	case LogsLoaded:
		s.logsLoaded(a)
		return nil
	case LogsFailed:
		s.logsFailed(a)
		return nil
	case CatalogLoaded:
		s.catalogLoaded(a.Catalog)
		return nil
	case CatalogFailed:
		s.refreshing = false
		s.message = fmt.Sprintf("Refresh failed: %v", a.Err)
		return nil
	case SetDefaultSeverity:
		s.fallback = journal.ClampSeverity(a.Severity)
		return nil
	case Notify:
		s.message = a.Text
		return nil
	}

	if s.searching {
		switch a := a.(type) {
		case CancelSearch:
			s.searching = false
		case CommitSearch:
			s.commitSearch(a.Query)
		case Back:
			s.searching = false
		}
		return nil
	}

	switch a := a.(type) {
	case Back:
		return s.back()
	case ToggleHelp:
		s.overlays.Help = !s.overlays.Help
	case ToggleDocs:
		s.overlays.Docs = !s.overlays.Docs
	case ToggleDetail:
		if s.overlays.Detail || s.Len() > 0 {
			s.overlays.Detail = !s.overlays.Detail
		}
	case MoveUp:
		s.cursor--
	case MoveDown:
		s.cursor++
	case Move:
		s.cursor += a.Delta
	case Top:
		s.cursor = 0
	case Bottom:
		s.cursor = s.Len() - 1
	case Left:
		if s.inLogs {
			s.setSeverity(s.severity - 1)
		} else {
			s.switchView(ViewUnits)
		}
	case Right:
		if s.inLogs {
			s.setSeverity(s.severity + 1)
		} else {
			s.switchView(ViewUnitFiles)
		}
	case SwitchView:
		if !s.inLogs {
			s.switchView(1 - s.view)
		}
	case Confirm:
		return s.confirm()
	case SetSeverity:
		if s.inLogs && a.Severity >= journal.MinSeverity && a.Severity <= journal.MaxSeverity {
			s.severity = a.Severity
			s.collectionChanged()
		}
	case CloseLogs:
		s.closeLogs()
	case StartSearch:
		s.searching = true
	case Yank:
		if !s.overlays.Any() {
			if entry, ok := s.SelectedEntry(); ok {
				return Copy{Text: entry.Message}
			}
		}
	case Refresh:
		if !s.inLogs && !s.refreshing {
			s.refreshing = true
			s.message = "Refreshing service catalog..."
			return RefreshCatalog{}
		}
	}
	return nil
}

func (s *State) back() Effect {
	switch {
	case s.overlays.Help:
		s.overlays.Help = false
	case s.overlays.Docs:
		s.overlays.Docs = false
	case s.overlays.Detail:
		s.overlays.Detail = false
	default:
		return QuitEffect{}
	}
	return nil
}

func (s *State) switchView(v View) {
	if s.view == v {
		return
	}
	s.view = v
	s.logs = nil
	s.query = ""
	s.collectionChanged()
}

func (s *State) setSeverity(sev int) {
	sev = journal.ClampSeverity(sev)
	if sev == s.severity {
		return
	}
	s.severity = sev
	s.collectionChanged()
}

func (s *State) confirm() Effect {
	if s.inLogs {
		return nil
	}
	name, ok := s.SelectedName()
	if !ok {
		return nil
	}
	s.generation++
	s.selected = name
	s.inLogs = true
	s.logs = nil
	s.loading = true
	s.query = ""
	s.message = ""
	s.collectionChanged()
	return FetchLogs{Service: name, Generation: s.generation}
}

func (s *State) closeLogs() {
	if !s.inLogs {
		return
	}
	s.generation++
	s.inLogs = false
	s.logs = nil
	s.selected = ""
	s.loading = false
	s.query = ""
	s.message = ""
	s.severity = s.fallback
	s.collectionChanged()
}

func (s *State) logsLoaded(a LogsLoaded) {
	if !s.inLogs || a.Generation != s.generation {
		return
	}
	s.loading = false
	s.logs = a.Store
	s.collectionChanged()
}

func (s *State) logsFailed(a LogsFailed) {
	if !s.inLogs || a.Generation != s.generation {
		return
	}
	s.loading = false
	s.logs = nil
	s.message = fmt.Sprintf("Could not load logs for %s: %v", s.selected, a.Err)
	s.collectionChanged()
}

func (s *State) catalogLoaded(c systemd.Catalog) {
	s.refreshing = false
	s.units = c.Units
	s.unitFiles = c.UnitFiles
	s.message = ""
	if !s.inLogs {
		s.query = ""
		s.collectionChanged()
	}
}

func (s *State) commitSearch(query string) {
	s.searching = false
	s.query = query
	s.cursor = 0
	switch {
	case s.inLogs:
		if s.logs != nil {
			s.logs.Reorder(s.severity, query)
		}
	case s.view == ViewUnitFiles:
		search.Reorder(s.unitFiles, query, UnitFileKey)
	default:
		search.Reorder(s.units, query, UnitKey)
	}
}

// MatchCount returns how many rows of the visible collection match query.
func (s *State) MatchCount(query string) int {
	switch {
	case s.inLogs:
		if s.logs == nil {
			return 0
		}
		return s.logs.Count(s.severity, query)
	case s.view == ViewUnitFiles:
		return search.Count(s.unitFiles, query, UnitFileKey)
	default:
		return search.Count(s.units, query, UnitKey)
	}
}

// collectionChanged resets per-collection state after the visible list
// was replaced.
func (s *State) collectionChanged() {
	s.cursor = 0
	if s.Len() == 0 {
		s.overlays.Detail = false
	}
}

func (s *State) clamp() {
	n := s.Len()
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// UnitKey is the text a service unit is matched against.
func UnitKey(u systemd.ServiceUnit) string {
	return u.Name + " " + u.Description
}

// UnitFileKey is the text a unit file is matched against.
func UnitFileKey(f systemd.ServiceUnitFile) string {
	return f.Name
}
