// Package sysinfo gathers the read-only machine facts the info view shows.
package sysinfo

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

type DiskInfo struct {
	Mount       string
	Total       uint64
	Used        uint64
	UsedPercent float64
}

type Info struct {
	Hostname      string
	Platform      string
	UptimeSeconds uint64
	MemTotal      uint64
	MemUsed       uint64
	Disks         []DiskInfo
}

// Collect gathers what it can; individual probe failures leave their fields
// zeroed rather than failing the whole snapshot.
func Collect() Info {
	info := Info{}

	if h, err := host.Info(); err == nil {
		info.Hostname = h.Hostname
		info.Platform = strings.TrimSpace(h.Platform + " " + h.PlatformVersion)
		info.UptimeSeconds = h.Uptime
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemTotal = vm.Total
		info.MemUsed = vm.Used
	}
	if parts, err := disk.Partitions(false); err == nil {
		for _, part := range parts {
			usage, usageErr := disk.Usage(part.Mountpoint)
			if usageErr != nil {
				continue
			}
			info.Disks = append(info.Disks, DiskInfo{
				Mount:       part.Mountpoint,
				Total:       usage.Total,
				Used:        usage.Used,
				UsedPercent: usage.UsedPercent,
			})
		}
	}
	return info
}

func (d DiskInfo) String() string {
	return fmt.Sprintf("%s: %s / %s (%.0f%%)",
		d.Mount, humanize.Bytes(d.Used), humanize.Bytes(d.Total), d.UsedPercent)
}

// FormatUptime renders seconds as "2 days, 3 hours, 4 minutes", dropping
// units that are zero from the left.
func FormatUptime(seconds uint64) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%s, %s, %s",
			pluralize(days, "day"), pluralize(hours, "hour"), pluralize(minutes, "minute"))
	case hours > 0:
		return fmt.Sprintf("%s, %s", pluralize(hours, "hour"), pluralize(minutes, "minute"))
	case minutes > 0:
		return pluralize(minutes, "minute")
	default:
		return pluralize(seconds, "second")
	}
}

func pluralize(count uint64, unit string) string {
	if count == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", count, unit)
}
