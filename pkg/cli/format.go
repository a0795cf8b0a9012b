package cli

import (
	"fmt"
	"time"
)

// FormatDuration renders d compactly: whole milliseconds under a
// second, tenths of a second under a minute, then minutes with seconds.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		mins := int(d / time.Minute)
		rem := d - time.Duration(mins)*time.Minute
		return fmt.Sprintf("%dm%.1fs", mins, rem.Seconds())
	}
}

// FormatBytes renders n with the largest binary unit that fits, capped
// at gigabytes.
func FormatBytes(n int64) string {
	const k = 1024
	if n < k {
		return fmt.Sprintf("%d B", n)
	}
	units := []string{"KB", "MB", "GB"}
	v := float64(n) / k
	for i := 0; ; i++ {
		if v < k || i == len(units)-1 {
			return fmt.Sprintf("%.2f %s", v, units[i])
		}
		v /= k
	}
}
