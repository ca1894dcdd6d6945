package derived

import (
	"strings"
	"time"
	"unicode"

	"synergysphere/internal/models"
)

const (
	dateLayout     = "Jan 02, 2006"
	dateTimeLayout = "Jan 02, 2006 15:04"

	LabelToday    = "Today"
	LabelTomorrow = "Tomorrow"
	LabelOverdue  = "Overdue"
	LabelInvalid  = "Invalid date"
)

// FormatDate renders d as "Jan 02, 2006".
func FormatDate(d time.Time) string {
	if d.IsZero() {
		return LabelInvalid
	}
	return d.Format(dateLayout)
}

// FormatDateTime renders d as "Jan 02, 2006 15:04".
func FormatDateTime(d time.Time) string {
	if d.IsZero() {
		return LabelInvalid
	}
	return d.Format(dateTimeLayout)
}

// IsOverdue reports whether the task has a valid due date before now and is
// not done.
func IsOverdue(t models.Task, now time.Time) bool {
	if t.DueDate == nil || t.DueDate.IsZero() {
		return false
	}
	if t.Status == models.StatusDone {
		return false
	}
	return t.DueDate.Before(now)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// RelativeDateLabel describes d relative to now: "Today", "Tomorrow",
// "Overdue" for any earlier instant, otherwise the formatted date. Calendar
// days are those of now's location.
func RelativeDateLabel(d, now time.Time) string {
	if d.IsZero() {
		return LabelInvalid
	}
	local := d.In(now.Location())
	switch {
	case sameDay(local, now):
		return LabelToday
	case sameDay(local, now.AddDate(0, 0, 1)):
		return LabelTomorrow
	case local.Before(now):
		return LabelOverdue
	}
	return FormatDate(local)
}

// Initials returns up to two upper-case initials of name.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Split(name, " ") {
		if word == "" {
			continue
		}
		r := []rune(word)[0]
		b.WriteRune(unicode.ToUpper(r))
		n++
		if n == 2 {
			break
		}
	}
	return b.String()
}
