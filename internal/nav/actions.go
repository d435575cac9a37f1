package nav

import (
	"github.com/five82/rounal/internal/journal"
	"github.com/five82/rounal/internal/systemd"
)

// Action is an input to State.Apply: a user intent or a completed
// background operation.
type Action interface{ action() }

type (
	Quit         struct{}
	Back         struct{} // close the topmost overlay, or quit when none is open
	ToggleHelp   struct{}
	ToggleDocs   struct{}
	ToggleDetail struct{}

	MoveUp   struct{}
	MoveDown struct{}
	Move     struct{ Delta int }
	Top      struct{}
	Bottom   struct{}

	// Left and Right switch views while browsing and step the severity
	// while viewing logs.
	Left       struct{}
	Right      struct{}
	SwitchView struct{}

	Confirm     struct{}
	SetSeverity struct{ Severity int }
	CloseLogs   struct{}

	StartSearch  struct{}
	CancelSearch struct{}
	CommitSearch struct{ Query string }

	Yank    struct{}
	Refresh struct{}
	Notify  struct{ Text string }

	SetDefaultSeverity struct{ Severity int }

	LogsLoaded struct {
		Generation uint64
		Store      *journal.Store
	}
	LogsFailed struct {
		Generation uint64
		Err        error
	}
	CatalogLoaded struct{ Catalog systemd.Catalog }
	CatalogFailed struct{ Err error }
)

func (Quit) action()               {}
func (Back) action()               {}
func (ToggleHelp) action()         {}
func (ToggleDocs) action()         {}
func (ToggleDetail) action()       {}
func (MoveUp) action()             {}
func (MoveDown) action()           {}
func (Move) action()               {}
func (Top) action()                {}
func (Bottom) action()             {}
func (Left) action()               {}
func (Right) action()              {}
func (SwitchView) action()         {}
func (Confirm) action()            {}
func (SetSeverity) action()        {}
func (CloseLogs) action()          {}
func (StartSearch) action()        {}
func (CancelSearch) action()       {}
func (CommitSearch) action()       {}
func (Yank) action()               {}
func (Refresh) action()            {}
func (Notify) action()             {}
func (SetDefaultSeverity) action() {}
func (LogsLoaded) action()         {}
func (LogsFailed) action()         {}
func (CatalogLoaded) action()      {}
func (CatalogFailed) action()      {}

// Effect is a side effect requested by a transition. A nil Effect means
// nothing needs to happen outside the state.
type Effect interface{ effect() }

type (
	QuitEffect struct{}
	// FetchLogs asks for the journal of Service. The result must be fed
	// back with the same Generation.
	FetchLogs struct {
		Service    string
		Generation uint64
	}
	Copy           struct{ Text string }
	RefreshCatalog struct{}
)

func (QuitEffect) effect()     {}
func (FetchLogs) effect()      {}
func (Copy) effect()           {}
func (RefreshCatalog) effect() {}
