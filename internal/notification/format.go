package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/Marga-Ghale/club-portal/internal/types"
)

// longDate renders t like "January 2nd, 2006".
func longDate(t time.Time) string {
	return fmt.Sprintf("%s %d%s, %d", t.Month(), t.Day(), ordinal(t.Day()), t.Year())
}

func ordinal(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// clockTime renders a stored "15:04" value as "3:04 PM". Unparseable values
// are returned unchanged.
func clockTime(value string) string {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("3:04 PM")
		}
	}
	return value
}

func nonEmpty(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	v := strings.TrimSpace(*s)
	return v, v != ""
}

func kindLabel(kind string) string {
	if kind == types.CategoryMeeting {
		return "Meeting"
	}
	return "Event"
}

// Subject returns "New Event: <title>" or "New Meeting: <title>".
func (a Announcement) Subject() string {
	return fmt.Sprintf("New %s: %s", kindLabel(a.Kind), a.Title)
}

// Body assembles the plain-text email. Optional lines without a value are left out.
func (a Announcement) Body(clubName string) string {
	label := kindLabel(a.Kind)

	var b strings.Builder
	fmt.Fprintf(&b, "A new %s has been scheduled!\n\n", strings.ToLower(label))
	fmt.Fprintf(&b, "%s: %s\n", label, a.Title)
	fmt.Fprintf(&b, "Date: %s\n", longDate(a.Date))
	if v, ok := nonEmpty(a.Time); ok {
		fmt.Fprintf(&b, "Time: %s\n", clockTime(v))
	}
	if v, ok := nonEmpty(a.Location); ok {
		fmt.Fprintf(&b, "Location: %s\n", v)
	}
	if v, ok := nonEmpty(a.Description); ok {
		fmt.Fprintf(&b, "\nDescription:\n%s\n", v)
	}

	if a.Kind == types.CategoryMeeting {
		b.WriteString("\nPlease mark your calendar and join us!\n")
	} else {
		b.WriteString("\nWe look forward to seeing you there!\n")
	}
	fmt.Fprintf(&b, "\nBest regards,\n%s", clubName)

	return b.String()
}

// inAppMessage is the one-line text stored on the in-app notification row.
func (a Announcement) inAppMessage() string {
	msg := fmt.Sprintf("%s on %s", a.Title, longDate(a.Date))
	if v, ok := nonEmpty(a.Time); ok {
		msg += " at " + clockTime(v)
	}
	if v, ok := nonEmpty(a.Location); ok {
		msg += ", " + v
	}
	return msg
}
