package rooms

import (
	"fmt"
	"strings"

	"github.com/rusoc/rusoc-go/internal/course"
	apperr "github.com/rusoc/rusoc-go/internal/errors"
	"github.com/rusoc/rusoc-go/internal/logger"
	"github.com/rusoc/rusoc-go/internal/stringutil"
)

// AvailabilityQuery asks which rooms are free on Day during
// [StartTime, EndTime). Day accepts a weekday code or full name; times
// accept 12-hour "H:MM AM/PM" or 4-digit military form. Campus and
// Search optionally narrow the candidate room set.
type AvailabilityQuery struct {
	Day       string
	StartTime string
	EndTime   string
	Campus    string
	Search    string
}

// FindAvailableRooms returns the candidate rooms with no meeting
// overlapping the requested window under the half-open overlap rule
// (targetStart < classEnd && classStart < targetEnd). Meetings whose
// times cannot be parsed never block a room; they are logged so the gap
// is visible rather than silently miscomputed.
func FindAvailableRooms(q AvailabilityQuery, courses []course.EnrichedCourse, log *logger.Logger) ([]Room, error) {
	day, ok := canonicalWeekday(course.FormatWeekday(strings.TrimSpace(q.Day)))
	if !ok {
		return nil, fmt.Errorf("%w: unknown day %q", apperr.ErrInvalidInput, q.Day)
	}

	targetStart, ok := course.ParseClockTime(q.StartTime)
	if !ok {
		return nil, fmt.Errorf("%w: bad start time %q", apperr.ErrInvalidInput, q.StartTime)
	}
	targetEnd, ok := course.ParseClockTime(q.EndTime)
	if !ok {
		return nil, fmt.Errorf("%w: bad end time %q", apperr.ErrInvalidInput, q.EndTime)
	}
	if targetStart >= targetEnd {
		return nil, fmt.Errorf("%w: start %q is not before end %q", apperr.ErrInvalidInput, q.StartTime, q.EndTime)
	}

	candidates := SearchRooms(q.Search, courses)
	if campus := resolveCampus(q.Campus); campus != "" {
		narrowed := candidates[:0:0]
		for _, r := range candidates {
			if stringutil.ContainsEither(campus, r.Campus) {
				narrowed = append(narrowed, r)
			}
		}
		candidates = narrowed
	}

	busy := busyRooms(day, targetStart, targetEnd, courses, log)

	available := make([]Room, 0, len(candidates))
	for _, r := range candidates {
		if !busy[r.Key()] {
			available = append(available, r)
		}
	}
	return available, nil
}

// resolveCampus expands short campus codes ("BU", "LIV") to full names;
// anything else passes through for name matching.
func resolveCampus(campus string) string {
	campus = strings.TrimSpace(campus)
	if campus == "" {
		return ""
	}
	if name, ok := course.CampusAbbrevToName[strings.ToUpper(campus)]; ok {
		return name
	}
	return campus
}

// canonicalWeekday matches day names case-insensitively and returns
// the canonical capitalized form.
func canonicalWeekday(day string) (string, bool) {
	for _, d := range course.WeekOrder {
		if strings.EqualFold(d, day) {
			return d, true
		}
	}
	return "", false
}

// busyRooms collects the keys of rooms with a meeting overlapping the
// window on the given day.
func busyRooms(day string, targetStart, targetEnd int, courses []course.EnrichedCourse, log *logger.Logger) map[string]bool {
	busy := make(map[string]bool)
	for _, c := range courses {
		for _, s := range c.Sections {
			for _, m := range s.MeetingTimes {
				if m.Day != day || !hasLocation(m) {
					continue
				}

				classStart, okStart := course.ParseClockTime(m.StartTime.Military)
				classEnd, okEnd := course.ParseClockTime(m.EndTime.Military)
				if !okStart || !okEnd {
					if log != nil {
						log.Warn("meeting with unparseable time treated as non-blocking",
							"course", c.CourseString,
							"building", m.Building,
							"room", m.Room,
							"start", m.StartTime.Military,
							"end", m.EndTime.Military)
					}
					continue
				}

				if targetStart < classEnd && classStart < targetEnd {
					busy[m.Building+"_"+m.Room] = true
				}
			}
		}
	}
	return busy
}
