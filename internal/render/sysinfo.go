package render

import (
	"fmt"
	"strings"

	"codeberg.org/mutker/sysmon/internal/platform"
)

// SystemInfo formats the uname fields and the uptime, the latter both as days
// plus clock and as total hours.
func SystemInfo(info platform.SystemInfo, up platform.Uptime) string {
	var b strings.Builder
	b.WriteString("### System Information ###\n")
	fmt.Fprintf(&b, "System Name = %s\n", info.SysName)
	fmt.Fprintf(&b, "Machine Name= %s\n", info.NodeName)
	fmt.Fprintf(&b, "Version= %s\n", info.Version)
	fmt.Fprintf(&b, "Release= %s\n", info.Release)
	fmt.Fprintf(&b, "Architecture= %s\n", info.Machine)
	fmt.Fprintf(&b, "System running since last reboot: %s\n", UptimeString(up))
	return b.String()
}

// UptimeString renders "D days HH:MM:SS (TH:MM:SS)".
func UptimeString(up platform.Uptime) string {
	return fmt.Sprintf("%d days %02d:%02d:%02d (%02d:%02d:%02d)",
		up.Days, up.Hours, up.Minutes, up.Seconds, up.TotalHours(), up.Minutes, up.Seconds)
}
