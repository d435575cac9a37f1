// Package hostinfo gathers the host facts shown in rounal's header.
package hostinfo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/host"
)

// Info describes the machine whose services are being browsed.
type Info struct {
	Hostname string
	Platform string
	Kernel   string
	Uptime   time.Duration
}

// Fetch reads host information.
func Fetch(ctx context.Context) (Info, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("read host info: %w", err)
	}
	platform := strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
	return Info{
		Hostname: info.Hostname,
		Platform: platform,
		Kernel:   info.KernelVersion,
		Uptime:   time.Duration(info.Uptime) * time.Second,
	}, nil
}

// Summary renders "host · platform · up 3d 4h 5m", omitting unknown parts.
func (i Info) Summary() string {
	var parts []string
	if i.Hostname != "" {
		parts = append(parts, i.Hostname)
	}
	if i.Platform != "" {
		parts = append(parts, i.Platform)
	}
	if i.Uptime > 0 {
		parts = append(parts, "up "+FormatUptime(i.Uptime))
	}
	return strings.Join(parts, " · ")
}

// FormatUptime renders d as days, hours and minutes.
func FormatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
