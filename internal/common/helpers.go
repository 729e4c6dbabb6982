// Package common holds small utilities used across the project:
// amount formatting, duration formatting for cooldown messages,
// epoch-millis conversion for reward timestamps.
package common

import (
	"fmt"
	"strings"
	"time"
)

// CurrencyName is the display name of the bot currency.
const CurrencyName = "coins"

// FormatAmount renders an amount with thousands separators.
// Example: FormatAmount(1250000) → "1,250,000 coins"
func FormatAmount(amount int64) string {
	return fmt.Sprintf("%s %s", GroupDigits(amount), CurrencyName)
}

// GroupDigits inserts commas every three digits.
func GroupDigits(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) > 3 {
		var parts []string
		for len(s) > 3 {
			parts = append([]string{s[len(s)-3:]}, parts...)
			s = s[:len(s)-3]
		}
		s = s + "," + strings.Join(parts, ",")
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatDuration renders a duration as "2d 5h 13m" (seconds only when
// the duration is under a minute). Used for cooldown replies.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	var sb strings.Builder
	if days > 0 {
		fmt.Fprintf(&sb, "%dd ", days)
	}
	if hours > 0 {
		fmt.Fprintf(&sb, "%dh ", hours)
	}
	fmt.Fprintf(&sb, "%dm", minutes)
	return sb.String()
}

// NowMillis returns the current time as epoch milliseconds.
// Reward claim timestamps are stored in this form (0 = never claimed).
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// MillisToTime converts a stored epoch-millis timestamp back to time.Time.
func MillisToTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// FormatDateTime renders a timestamp for transaction history lines.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format("02.01.2006 15:04")
}

// ParseUserMention extracts a user ID from a Discord mention argument.
// Accepts <@123>, <@!123> or a bare snowflake.
func ParseUserMention(arg string) (string, bool) {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, "<@") && strings.HasSuffix(arg, ">") {
		arg = strings.TrimSuffix(strings.TrimPrefix(arg, "<@"), ">")
		arg = strings.TrimPrefix(arg, "!")
	}
	if arg == "" {
		return "", false
	}
	for _, r := range arg {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return arg, true
}
