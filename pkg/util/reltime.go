package util

import (
	"fmt"
	"math"
	"time"
)

const (
	RelNever     = "Jamais"
	RelJustNow   = "À l'instant"
	RelYesterday = "Hier"
)

// RelativeTime renders t relative to now the way the dashboard shows it.
// Past 30 days the absolute date is used (dd/mm/yyyy, server local time)
func RelativeTime(t *time.Time, now time.Time) string {
	if t == nil {
		return RelNever
	}

	diff := now.Sub(*t)
	hours := int(math.Floor(diff.Hours()))
	days := int(math.Floor(diff.Hours() / 24))

	switch {
	case hours < 1:
		return RelJustNow
	case hours < 24:
		return fmt.Sprintf("Il y a %dh", hours)
	case days == 1:
		return RelYesterday
	case days < 30:
		return fmt.Sprintf("Il y a %d jours", days)
	}

	return t.In(time.Local).Format("02/01/2006")
}

// StartOfDay returns local midnight of the day t falls in
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
