package systemd

// LoadState is the LOAD column of a service unit.
type LoadState int

const (
	LoadUnknown LoadState = iota
	LoadLoaded
	LoadNotFound
)

var loadStates = map[string]LoadState{
	"loaded":    LoadLoaded,
	"not-found": LoadNotFound,
}

// ParseLoadState maps s to a LoadState; unrecognized values map to LoadUnknown.
func ParseLoadState(s string) LoadState { return loadStates[s] }

func (s LoadState) String() string {
	switch s {
	case LoadLoaded:
		return "loaded"
	case LoadNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// ActiveState is the ACTIVE column of a service unit.
type ActiveState int

const (
	ActiveUnknown ActiveState = iota
	ActiveActive
	ActiveInactive
)

var activeStates = map[string]ActiveState{
	"active":   ActiveActive,
	"inactive": ActiveInactive,
}

func ParseActiveState(s string) ActiveState { return activeStates[s] }

func (s ActiveState) String() string {
	switch s {
	case ActiveActive:
		return "active"
	case ActiveInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// SubState is the SUB column of a service unit.
type SubState int

const (
	SubUnknown SubState = iota
	SubRunning
	SubExited
	SubDead
	SubWaiting
	SubInactive
	SubFailed
	SubActivating
	SubDeactivating
	SubReloading
)

var subStateNames = []string{
	SubUnknown:      "unknown",
	SubRunning:      "running",
	SubExited:       "exited",
	SubDead:         "dead",
	SubWaiting:      "waiting",
	SubInactive:     "inactive",
	SubFailed:       "failed",
	SubActivating:   "activating",
	SubDeactivating: "deactivating",
	SubReloading:    "reloading",
}

func ParseSubState(s string) SubState {
	for i, name := range subStateNames {
		if i > 0 && name == s {
			return SubState(i)
		}
	}
	return SubUnknown
}

func (s SubState) String() string {
	if s < 0 || int(s) >= len(subStateNames) {
		return "unknown"
	}
	return subStateNames[s]
}

// FileState is the STATE column of a unit file.
type FileState int

const (
	FileUnknown FileState = iota
	FileEnabled
	FileDisabled
	FileStatic
	FileMasked
	FileAlias
	FileIndirect
	FileGenerated
	FileEnabledRuntime
	FileTransient
)

var fileStateNames = []string{
	FileUnknown:        "unknown",
	FileEnabled:        "enabled",
	FileDisabled:       "disabled",
	FileStatic:         "static",
	FileMasked:         "masked",
	FileAlias:          "alias",
	FileIndirect:       "indirect",
	FileGenerated:      "generated",
	FileEnabledRuntime: "enabled-runtime",
	FileTransient:      "transient",
}

func ParseFileState(s string) FileState {
	for i, name := range fileStateNames {
		if i > 0 && name == s {
			return FileState(i)
		}
	}
	return FileUnknown
}

func (s FileState) String() string {
	if s < 0 || int(s) >= len(fileStateNames) {
		return "unknown"
	}
	return fileStateNames[s]
}

// Preset is the PRESET column of a unit file. "-" means no preset applies.
type Preset int

const (
	PresetUnknown Preset = iota
	PresetEnabled
	PresetDisabled
	PresetEmpty
)

var presets = map[string]Preset{
	"enabled":  PresetEnabled,
	"disabled": PresetDisabled,
	"-":        PresetEmpty,
}

func ParsePreset(s string) Preset { return presets[s] }

func (p Preset) String() string {
	switch p {
	case PresetEnabled:
		return "enabled"
	case PresetDisabled:
		return "disabled"
	case PresetEmpty:
		return "-"
	default:
		return "unknown"
	}
}

// ServiceUnit is one row of the service unit listing.
type ServiceUnit struct {
	Name        string
	Load        LoadState
	Active      ActiveState
	Sub         SubState
	Description string
}

// ServiceUnitFile is one row of the service unit file listing.
type ServiceUnitFile struct {
	Name   string
	State  FileState
	Preset Preset
}
