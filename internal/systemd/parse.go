package systemd

import "strings"

const serviceSuffix = ".service"

// flagged reports whether the first token is the marker systemctl prints in
// front of failed or not-found units. Non-UTF-8 locales print "*".
func flagged(token string) bool {
	return token == "●" || token == "*"
}

// ParseUnitLine parses one row of "systemctl list-units". Header, legend and
// footer lines are rejected because their first column is not a service name.
func ParseUnitLine(line string) (ServiceUnit, bool) {
	fields := strings.Fields(line)
	if len(fields) > 0 && flagged(fields[0]) {
		fields = fields[1:]
	}
	if len(fields) < 4 || !strings.HasSuffix(fields[0], serviceSuffix) {
		return ServiceUnit{}, false
	}
	return ServiceUnit{
		Name:        fields[0],
		Load:        ParseLoadState(fields[1]),
		Active:      ParseActiveState(fields[2]),
		Sub:         ParseSubState(fields[3]),
		Description: strings.Join(fields[4:], " "),
	}, true
}

// ParseUnitFileLine parses one row of "systemctl list-unit-files".
func ParseUnitFileLine(line string) (ServiceUnitFile, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 || !strings.HasSuffix(fields[0], serviceSuffix) {
		return ServiceUnitFile{}, false
	}
	return ServiceUnitFile{
		Name:   fields[0],
		State:  ParseFileState(fields[1]),
		Preset: ParsePreset(fields[2]),
	}, true
}

// ParseUnits parses a full listing, skipping the header line.
func ParseUnits(lines []string) []ServiceUnit {
	if len(lines) > 0 {
		lines = lines[1:]
	}
	units := make([]ServiceUnit, 0, len(lines))
	for _, line := range lines {
		if u, ok := ParseUnitLine(line); ok {
			units = append(units, u)
		}
	}
	return units
}

// ParseUnitFiles parses a full listing, skipping the header line.
func ParseUnitFiles(lines []string) []ServiceUnitFile {
	if len(lines) > 0 {
		lines = lines[1:]
	}
	files := make([]ServiceUnitFile, 0, len(lines))
	for _, line := range lines {
		if f, ok := ParseUnitFileLine(line); ok {
			files = append(files, f)
		}
	}
	return files
}
