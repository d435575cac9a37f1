package nav

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/five82/rounal/internal/journal"
	"github.com/five82/rounal/internal/systemd"
)

func testCatalog() systemd.Catalog {
	return systemd.Catalog{
		Units: []systemd.ServiceUnit{
			{Name: "cron.service", Description: "Regular background program processing daemon"},
			{Name: "nginx.service", Description: "A high performance web server"},
			{Name: "sshd.service", Description: "OpenSSH Daemon"},
			{Name: "proxy.service", Description: "Reverse proxy in front of NGINX"},
		},
		UnitFiles: []systemd.ServiceUnitFile{
			{Name: "cron.service"},
			{Name: "sshd.service"},
		},
	}
}

func logStore() *journal.Store {
	s := journal.NewStore()
	for sev := journal.MinSeverity; sev <= journal.MaxSeverity; sev++ {
		s.Put(sev, nil)
	}
	s.Put(3, []journal.LogEntry{
		{Severity: 3, Timestamp: "Oct 19 10:00:03", Service: "sshd[1]", Message: "third"},
		{Severity: 3, Timestamp: "Oct 19 10:00:02", Service: "sshd[1]", Message: "second"},
		{Severity: 3, Timestamp: "Oct 19 10:00:01", Service: "sshd[1]", Message: "first"},
	})
	s.Put(4, []journal.LogEntry{
		{Severity: 4, Timestamp: "Oct 19 09:00:00", Service: "sshd[1]", Message: "warn"},
	})
	return s
}

func unitNames(s *State) []string {
	out := make([]string, 0, len(s.Units()))
	for _, u := range s.Units() {
		out = append(out, u.Name)
	}
	return out
}

func TestNew_ClampsDefaultSeverity(t *testing.T) {
	s := New(testCatalog(), 12)
	if s.Severity() != 7 || s.DefaultSeverity() != 7 {
		t.Fatalf("severity = %d/%d, want 7/7", s.Severity(), s.DefaultSeverity())
	}
	if s.View() != ViewUnits || s.InLogs() || s.Cursor() != 0 {
		t.Fatalf("unexpected initial state: view=%v inLogs=%v cursor=%d", s.View(), s.InLogs(), s.Cursor())
	}
}

func TestMove_ClampsWithoutWrapping(t *testing.T) {
	s := New(testCatalog(), 4)

	s.Apply(MoveUp{})
	if s.Cursor() != 0 {
		t.Fatalf("cursor = %d after MoveUp at top, want 0", s.Cursor())
	}
	for i := 0; i < 10; i++ {
		s.Apply(MoveDown{})
	}
	if s.Cursor() != 3 {
		t.Fatalf("cursor = %d after many MoveDown, want 3", s.Cursor())
	}
	s.Apply(Move{Delta: -2})
	if s.Cursor() != 1 {
		t.Fatalf("cursor = %d after Move(-2), want 1", s.Cursor())
	}
	s.Apply(Top{})
	if s.Cursor() != 0 {
		t.Fatalf("cursor = %d after Top, want 0", s.Cursor())
	}
	s.Apply(Bottom{})
	if s.Cursor() != 3 {
		t.Fatalf("cursor = %d after Bottom, want 3", s.Cursor())
	}
}

func TestLeftRight_SwitchViewsWhileBrowsing(t *testing.T) {
	s := New(testCatalog(), 4)
	s.Apply(MoveDown{})

	s.Apply(Right{})
	if s.View() != ViewUnitFiles || s.Cursor() != 0 {
		t.Fatalf("after Right: view=%v cursor=%d, want unit files at 0", s.View(), s.Cursor())
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}

	s.Apply(MoveDown{})
	s.Apply(Right{})
	if s.Cursor() != 1 {
		t.Fatalf("Right on the active view reset cursor to %d", s.Cursor())
	}

	s.Apply(Left{})
	if s.View() != ViewUnits || s.Cursor() != 0 {
		t.Fatalf("after Left: view=%v cursor=%d, want units at 0", s.View(), s.Cursor())
	}

	s.Apply(SwitchView{})
	if s.View() != ViewUnitFiles {
		t.Fatalf("SwitchView did not toggle, view=%v", s.View())
	}
}

func TestConfirm_EntersLogsAndRequestsFetch(t *testing.T) {
	s := New(testCatalog(), 4)
	s.Apply(MoveDown{})
	s.Apply(MoveDown{})

	eff := s.Apply(Confirm{})
	fetch, ok := eff.(FetchLogs)
	if !ok {
		t.Fatalf("effect = %#v, want FetchLogs", eff)
	}
	if fetch.Service != "sshd.service" {
		t.Fatalf("fetch service = %q, want sshd.service", fetch.Service)
	}
	if !s.InLogs() || !s.Loading() || s.SelectedService() != "sshd.service" || s.Cursor() != 0 {
		t.Fatalf("state after confirm: inLogs=%v loading=%v selected=%q cursor=%d",
			s.InLogs(), s.Loading(), s.SelectedService(), s.Cursor())
	}

	s.Apply(LogsLoaded{Generation: fetch.Generation, Store: logStore()})
	if s.Loading() || s.Logs() == nil {
		t.Fatalf("store not attached: loading=%v logs=%v", s.Loading(), s.Logs())
	}
	if s.Len() != 1 {
		t.Fatalf("Len at default severity 4 = %d, want 1", s.Len())
	}

	// Confirm is a no-op while viewing logs.
	if eff := s.Apply(Confirm{}); eff != nil {
		t.Fatalf("Confirm in logs returned %#v, want nil", eff)
	}
}

func TestConfirm_EmptyCollectionIsNoOp(t *testing.T) {
	s := New(systemd.Catalog{}, 4)
	if eff := s.Apply(Confirm{}); eff != nil {
		t.Fatalf("effect = %#v, want nil", eff)
	}
	if s.InLogs() {
		t.Fatal("entered logs from an empty list")
	}
}

func TestConfirm_UnitFileView(t *testing.T) {
	s := New(testCatalog(), 4)
	s.Apply(Right{})
	s.Apply(MoveDown{})
	eff := s.Apply(Confirm{})
	if fetch, ok := eff.(FetchLogs); !ok || fetch.Service != "sshd.service" {
		t.Fatalf("effect = %#v, want FetchLogs for sshd.service", eff)
	}
}

func enterLogs(t *testing.T, s *State) FetchLogs {
	t.Helper()
	eff := s.Apply(Confirm{})
	fetch, ok := eff.(FetchLogs)
	if !ok {
		t.Fatalf("effect = %#v, want FetchLogs", eff)
	}
	return fetch
}

func TestSeverity_StepsAndDigits(t *testing.T) {
	s := New(testCatalog(), 4)
	fetch := enterLogs(t, s)
	s.Apply(LogsLoaded{Generation: fetch.Generation, Store: logStore()})

	s.Apply(Left{})
	if s.Severity() != 3 || s.Len() != 3 {
		t.Fatalf("after Left: severity=%d len=%d, want 3/3", s.Severity(), s.Len())
	}
	s.Apply(MoveDown{})
	s.Apply(SetSeverity{Severity: 3})
	if s.Cursor() != 0 {
		t.Fatalf("SetSeverity did not reset cursor: %d", s.Cursor())
	}

	s.Apply(SetSeverity{Severity: 1})
	s.Apply(Left{})
	if s.Severity() != 1 {
		t.Fatalf("severity = %d, want clamp at 1", s.Severity())
	}
	s.Apply(SetSeverity{Severity: 7})
	s.Apply(Right{})
	if s.Severity() != 7 {
		t.Fatalf("severity = %d, want clamp at 7", s.Severity())
	}
	s.Apply(SetSeverity{Severity: 9})
	if s.Severity() != 7 {
		t.Fatalf("out of range SetSeverity changed severity to %d", s.Severity())
	}
}

func TestSetSeverity_IgnoredWhileBrowsing(t *testing.T) {
	s := New(testCatalog(), 4)
	s.Apply(SetSeverity{Severity: 2})
	if s.Severity() != 4 {
		t.Fatalf("severity = %d, want 4", s.Severity())
	}
}

func TestCloseLogs_RestoresBrowsing(t *testing.T) {
	s := New(testCatalog(), 4)
	s.Apply(Right{})
	fetch := enterLogs(t, s)
	s.Apply(LogsLoaded{Generation: fetch.Generation, Store: logStore()})
	s.Apply(SetSeverity{Severity: 3})
	s.Apply(MoveDown{})

	s.Apply(CloseLogs{})
	if s.InLogs() || s.Logs() != nil || s.SelectedService() != "" {
		t.Fatalf("logs not closed: inLogs=%v logs=%v selected=%q", s.InLogs(), s.Logs(), s.SelectedService())
	}
	if s.View() != ViewUnitFiles {
		t.Fatalf("view = %v, want the view logs were opened from", s.View())
	}
	if s.Severity() != 4 || s.Cursor() != 0 {
		t.Fatalf("severity=%d cursor=%d, want 4/0", s.Severity(), s.Cursor())
	}
}

func TestLogsFailed_StaysInLogsWithMessage(t *testing.T) {
	s := New(testCatalog(), 4)
	s.Apply(MoveDown{})
	fetch := enterLogs(t, s)

	err := &journal.FetchError{Severity: 5, Err: errors.New("permission denied")}
	s.Apply(LogsFailed{Generation: fetch.Generation, Err: err})

	if !s.InLogs() || s.Loading() || s.Logs() != nil {
		t.Fatalf("inLogs=%v loading=%v logs=%v", s.InLogs(), s.Loading(), s.Logs())
	}
	if !strings.Contains(s.Message(), "nginx.service") || !strings.Contains(s.Message(), "severity 5") {
		t.Fatalf("message = %q, want service and severity", s.Message())
	}
	if s.Len() != 0 || s.Cursor() != 0 {
		t.Fatalf("len=%d cursor=%d, want 0/0", s.Len(), s.Cursor())
	}
}

func TestStaleResultsAreIgnored(t *testing.T) {
	s := New(testCatalog(), 4)
	first := enterLogs(t, s)
	s.Apply(CloseLogs{})
	s.Apply(MoveDown{})
	second := enterLogs(t, s)

	s.Apply(LogsLoaded{Generation: first.Generation, Store: logStore()})
	if s.Logs() != nil || !s.Loading() {
		t.Fatal("stale LogsLoaded was applied")
	}
	s.Apply(LogsFailed{Generation: first.Generation, Err: errors.New("old")})
	if s.Message() != "" {
		t.Fatalf("stale LogsFailed set message %q", s.Message())
	}

	s.Apply(LogsLoaded{Generation: second.Generation, Store: logStore()})
	if s.Logs() == nil {
		t.Fatal("current LogsLoaded was not applied")
	}

	s.Apply(CloseLogs{})
	s.Apply(LogsLoaded{Generation: second.Generation, Store: logStore()})
	if s.InLogs() || s.Logs() != nil {
		t.Fatal("result after CloseLogs reopened logs")
	}
}

func TestSearch_FloatsMatchingServices(t *testing.T) {
	s := New(testCatalog(), 4)
	s.Apply(Bottom{})

	s.Apply(StartSearch{})
	if !s.Searching() {
		t.Fatal("StartSearch did not enter search mode")
	}
	s.Apply(CommitSearch{Query: "nginx"})

	got := unitNames(s)
	want := []string{"nginx.service", "proxy.service", "cron.service", "sshd.service"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if s.Searching() || s.Cursor() != 0 || s.Query() != "nginx" {
		t.Fatalf("searching=%v cursor=%d query=%q", s.Searching(), s.Cursor(), s.Query())
	}
}

func TestSearch_SuppressesNavigation(t *testing.T) {
	s := New(testCatalog(), 4)
	s.Apply(StartSearch{})

	s.Apply(MoveDown{})
	s.Apply(Right{})
	s.Apply(ToggleHelp{})
	if eff := s.Apply(Confirm{}); eff != nil {
		t.Fatalf("Confirm during search returned %#v", eff)
	}
	if s.Cursor() != 0 || s.View() != ViewUnits || s.Overlays().Help {
		t.Fatalf("navigation leaked through search: cursor=%d view=%v help=%v", s.Cursor(), s.View(), s.Overlays().Help)
	}

	if _, ok := s.Apply(Quit{}).(QuitEffect); !ok {
		t.Fatal("Quit must work while searching")
	}

	s.Apply(CancelSearch{})
	if s.Searching() {
		t.Fatal("CancelSearch did not leave search mode")
	}
	if unitNames(s)[0] != "cron.service" {
		t.Fatal("CancelSearch reordered the collection")
	}
}

func TestSearch_LogEntries(t *testing.T) {
	s := New(testCatalog(), 3)
	fetch := enterLogs(t, s)
	store := logStore()
	store.Put(3, []journal.LogEntry{
		{Timestamp: "Oct 19 10:00:03", Service: "cron"},
		{Timestamp: "Oct 19 10:00:02", Service: "sshd"},
	})
	s.Apply(LogsLoaded{Generation: fetch.Generation, Store: store})
	s.Apply(MoveDown{})

	s.Apply(StartSearch{})
	s.Apply(CommitSearch{Query: "SSHD"})
	entry, ok := s.SelectedEntry()
	if !ok || entry.Service != "sshd" {
		t.Fatalf("selected entry = %#v, want sshd first", entry)
	}
}

func TestSearch_BlankQueryKeepsOrderResetsCursor(t *testing.T) {
	s := New(testCatalog(), 4)
	s.Apply(MoveDown{})
	s.Apply(StartSearch{})
	s.Apply(CommitSearch{Query: "   "})
	if unitNames(s)[0] != "cron.service" {
		t.Fatalf("blank search reordered units: %v", unitNames(s))
	}
	if s.Cursor() != 0 || s.Searching() {
		t.Fatalf("after blank commit: cursor=%d searching=%v", s.Cursor(), s.Searching())
	}
}

func TestMatchCount(t *testing.T) {
	s := New(testCatalog(), 3)
	if got := s.MatchCount("nginx"); got != 2 {
		t.Fatalf("units matching nginx = %d, want 2", got)
	}
	if got := s.MatchCount("  "); got != 0 {
		t.Fatalf("blank query matched %d", got)
	}

	fetch := enterLogs(t, s)
	if got := s.MatchCount("sshd"); got != 0 {
		t.Fatalf("match count before logs arrive = %d", got)
	}
	store := logStore()
	store.Put(3, []journal.LogEntry{
		{Timestamp: "Oct 19 10:00:03", Service: "cron"},
		{Timestamp: "Oct 19 10:00:02", Service: "sshd"},
		{Timestamp: "Oct 19 10:00:01", Service: "sshd"},
	})
	s.Apply(LogsLoaded{Generation: fetch.Generation, Store: store})
	if got := s.MatchCount("SSHD"); got != 2 {
		t.Fatalf("log entries matching sshd = %d, want 2", got)
	}
}

func TestYank(t *testing.T) {
	s := New(testCatalog(), 3)
	if eff := s.Apply(Yank{}); eff != nil {
		t.Fatalf("Yank while browsing returned %#v", eff)
	}

	fetch := enterLogs(t, s)
	s.Apply(LogsLoaded{Generation: fetch.Generation, Store: logStore()})
	s.Apply(MoveDown{})

	eff := s.Apply(Yank{})
	if c, ok := eff.(Copy); !ok || c.Text != "second" {
		t.Fatalf("effect = %#v, want Copy{second}", eff)
	}

	s.Apply(ToggleHelp{})
	if eff := s.Apply(Yank{}); eff != nil {
		t.Fatalf("Yank with overlay open returned %#v", eff)
	}
}

func TestOverlays(t *testing.T) {
	s := New(testCatalog(), 4)
	s.Apply(MoveDown{})

	s.Apply(ToggleHelp{})
	s.Apply(ToggleDetail{})
	s.Apply(ToggleDocs{})
	o := s.Overlays()
	if !o.Help || !o.Detail || !o.Docs {
		t.Fatalf("overlays = %+v, want all open", o)
	}
	if s.Cursor() != 1 || s.View() != ViewUnits {
		t.Fatal("overlay toggles moved the cursor or view")
	}

	// Back closes one overlay at a time, then quits.
	for _, check := range []func(Overlays) bool{
		func(o Overlays) bool { return !o.Help && o.Docs && o.Detail },
		func(o Overlays) bool { return !o.Docs && o.Detail },
		func(o Overlays) bool { return !o.Any() },
	} {
		if eff := s.Apply(Back{}); eff != nil {
			t.Fatalf("Back returned %#v while overlays were open", eff)
		}
		if !check(s.Overlays()) {
			t.Fatalf("unexpected overlays %+v", s.Overlays())
		}
	}
	if _, ok := s.Apply(Back{}).(QuitEffect); !ok {
		t.Fatal("Back with nothing open should quit")
	}
}

func TestToggleDetail_RequiresEntries(t *testing.T) {
	s := New(systemd.Catalog{}, 4)
	s.Apply(ToggleDetail{})
	if s.Overlays().Detail {
		t.Fatal("detail opened on an empty collection")
	}

	s = New(testCatalog(), 4)
	s.Apply(ToggleDetail{})
	fetch := enterLogs(t, s)
	if s.Overlays().Detail {
		t.Fatal("detail stayed open while logs are loading")
	}
	s.Apply(LogsLoaded{Generation: fetch.Generation, Store: logStore()})
}

func TestRefresh(t *testing.T) {
	s := New(testCatalog(), 4)
	s.Apply(Bottom{})

	if _, ok := s.Apply(Refresh{}).(RefreshCatalog); !ok {
		t.Fatal("Refresh did not request a catalog refresh")
	}
	if eff := s.Apply(Refresh{}); eff != nil {
		t.Fatalf("second Refresh while in flight returned %#v", eff)
	}

	s.Apply(CatalogLoaded{Catalog: systemd.Catalog{Units: []systemd.ServiceUnit{{Name: "a.service"}}}})
	if s.Refreshing() || s.Len() != 1 || s.Cursor() != 0 {
		t.Fatalf("refreshing=%v len=%d cursor=%d", s.Refreshing(), s.Len(), s.Cursor())
	}

	s.Apply(Refresh{})
	s.Apply(CatalogFailed{Err: errors.New("bus down")})
	if s.Len() != 1 || !strings.Contains(s.Message(), "bus down") {
		t.Fatalf("failed refresh: len=%d message=%q", s.Len(), s.Message())
	}
}

func TestRefresh_IgnoredInLogs(t *testing.T) {
	s := New(testCatalog(), 4)
	enterLogs(t, s)
	if eff := s.Apply(Refresh{}); eff != nil {
		t.Fatalf("Refresh in logs returned %#v", eff)
	}
}

func TestSetDefaultSeverity_AppliesOnNextClose(t *testing.T) {
	s := New(testCatalog(), 4)
	enterLogs(t, s)
	s.Apply(SetDefaultSeverity{Severity: 2})
	if s.Severity() != 4 {
		t.Fatalf("severity changed immediately to %d", s.Severity())
	}
	s.Apply(CloseLogs{})
	if s.Severity() != 2 {
		t.Fatalf("severity after close = %d, want 2", s.Severity())
	}
}

func checkCursor(t *testing.T, s *State, step int, a Action) {
	t.Helper()
	n := s.Len()
	if n == 0 && s.Cursor() != 0 {
		t.Fatalf("step %d (%T): cursor = %d on empty collection", step, a, s.Cursor())
	}
	if n > 0 && (s.Cursor() < 0 || s.Cursor() >= n) {
		t.Fatalf("step %d (%T): cursor = %d out of [0,%d)", step, a, s.Cursor(), n)
	}
}

func TestCursorInvariant_RandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	catalogs := []systemd.Catalog{
		testCatalog(),
		{},
		{Units: []systemd.ServiceUnit{{Name: "only.service"}}},
	}

	for trial := 0; trial < 300; trial++ {
		s := New(catalogs[rng.Intn(len(catalogs))], 1+rng.Intn(7))
		var lastFetch FetchLogs

		for step := 0; step < 60; step++ {
			var a Action
			switch rng.Intn(20) {
			case 0:
				a = MoveUp{}
			case 1:
				a = MoveDown{}
			case 2:
				a = Move{Delta: rng.Intn(21) - 10}
			case 3:
				a = Top{}
			case 4:
				a = Bottom{}
			case 5:
				a = Left{}
			case 6:
				a = Right{}
			case 7:
				a = SwitchView{}
			case 8:
				a = Confirm{}
			case 9:
				a = CloseLogs{}
			case 10:
				a = SetSeverity{Severity: rng.Intn(9)}
			case 11:
				a = LogsLoaded{Generation: lastFetch.Generation, Store: logStore()}
			case 12:
				a = LogsFailed{Generation: lastFetch.Generation, Err: errors.New("x")}
			case 13:
				a = StartSearch{}
			case 14:
				a = CommitSearch{Query: []string{"ssh", "", "nginx", "zzz"}[rng.Intn(4)]}
			case 15:
				a = CancelSearch{}
			case 16:
				a = CatalogLoaded{Catalog: catalogs[rng.Intn(len(catalogs))]}
			case 17:
				a = ToggleDetail{}
			case 18:
				a = Back{}
			default:
				a = Yank{}
			}

			eff := s.Apply(a)
			if f, ok := eff.(FetchLogs); ok {
				lastFetch = f
			}
			checkCursor(t, s, step, a)
		}
	}
}
