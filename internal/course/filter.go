package course

import (
	"strings"

	"github.com/rusoc/rusoc-go/internal/soc"
	"github.com/rusoc/rusoc-go/internal/stringutil"
)

// FilterSet is the structured filter configuration applied before search.
// Zero-value fields impose no constraint. Multi-valued fields combine
// with OR internally; distinct fields combine with AND.
type FilterSet struct {
	// Subject keeps only courses whose subject code equals the value.
	// An empty value is a no-op even when explicitly supplied.
	Subject string

	// School keeps courses whose school code equals the value or whose
	// school description contains it.
	School string

	// CoreCode keeps courses carrying a matching core-requirement tag.
	CoreCode string

	// Status entries are "open" and/or "closed", matched as substrings
	// of any section's status text.
	Status []string

	// CourseType entries are "traditional", "hybrid" and/or "online",
	// matched against meeting delivery-mode text by substring rules.
	CourseType []string

	// Days entries are weekday codes, full names, or "weekend".
	Days []string

	// TimeRange entries are "morning", "afternoon" and/or "evening",
	// tested against each meeting's start time.
	TimeRange []string

	// Campus entries are campus names or fragments, matched
	// case-insensitively in both containment directions.
	Campus []string
}

// IsZero reports whether no constraint is set.
func (f FilterSet) IsZero() bool {
	return f.Subject == "" && f.School == "" && f.CoreCode == "" &&
		len(f.Status) == 0 && len(f.CourseType) == 0 && len(f.Days) == 0 &&
		len(f.TimeRange) == 0 && len(f.Campus) == 0
}

// needsSections reports whether any constraint requires section data.
// Courses without sections cannot satisfy such constraints and are
// excluded when one is present.
func (f FilterSet) needsSections() bool {
	return len(f.Status) > 0 || len(f.CourseType) > 0 || len(f.Days) > 0 ||
		len(f.TimeRange) > 0 || len(f.Campus) > 0
}

// ApplyFilters narrows a course list to those satisfying every constraint
// in the set. An empty set is the identity. The input slice is not
// modified.
func ApplyFilters(courses []soc.Course, f FilterSet) []soc.Course {
	if f.IsZero() {
		return courses
	}

	out := make([]soc.Course, 0, len(courses))
	for _, c := range courses {
		if matchesFilters(c, f) {
			out = append(out, c)
		}
	}
	return out
}

func matchesFilters(c soc.Course, f FilterSet) bool {
	if f.Subject != "" && strings.TrimSpace(c.Subject) != strings.TrimSpace(f.Subject) {
		return false
	}

	if f.School != "" {
		if c.School.Code != f.School && !strings.Contains(c.School.Description, f.School) {
			return false
		}
	}

	if f.CoreCode != "" && !hasCoreCode(c, f.CoreCode) {
		return false
	}

	if len(c.Sections) == 0 {
		return !f.needsSections()
	}

	if len(f.Status) > 0 && !matchesStatus(c.Sections, f.Status) {
		return false
	}

	if len(f.CourseType) > 0 || len(f.Days) > 0 || len(f.TimeRange) > 0 || len(f.Campus) > 0 {
		typeOK := len(f.CourseType) == 0
		daysOK := len(f.Days) == 0
		timeOK := len(f.TimeRange) == 0
		campusOK := len(f.Campus) == 0

		for _, s := range c.Sections {
			for _, m := range s.MeetingTimes {
				if !typeOK && matchesAnyCourseType(m, f.CourseType) {
					typeOK = true
				}
				if !daysOK && matchesAnyDay(m, f.Days) {
					daysOK = true
				}
				if !timeOK && matchesAnyTimeRange(m, f.TimeRange) {
					timeOK = true
				}
				if !campusOK && matchesAnyCampus(m, f.Campus) {
					campusOK = true
				}
			}
			if typeOK && daysOK && timeOK && campusOK {
				break
			}
		}

		if !(typeOK && daysOK && timeOK && campusOK) {
			return false
		}
	}

	return true
}

func hasCoreCode(c soc.Course, code string) bool {
	for _, core := range c.CoreCodes {
		if core.CoreCode == code {
			return true
		}
	}
	return false
}

func matchesStatus(sections []soc.Section, wanted []string) bool {
	for _, s := range sections {
		status := strings.ToLower(s.OpenStatusText)
		for _, w := range wanted {
			if strings.Contains(status, strings.ToLower(w)) {
				return true
			}
		}
	}
	return false
}

func matchesAnyCourseType(m soc.Meeting, types []string) bool {
	mode := strings.ToLower(m.MeetingModeDesc)
	for _, t := range types {
		switch t {
		case "traditional":
			if !strings.Contains(mode, "online") && !strings.Contains(mode, "hybrid") &&
				!strings.Contains(mode, "remote") && !strings.Contains(mode, "asynchronous") {
				return true
			}
		case "hybrid":
			if strings.Contains(mode, "hybrid") {
				return true
			}
		case "online":
			if strings.Contains(mode, "online") || strings.Contains(mode, "remote") ||
				strings.Contains(mode, "asynchronous") {
				return true
			}
		}
	}
	return false
}

func matchesAnyDay(m soc.Meeting, days []string) bool {
	code := m.MeetingDay
	name := FormatWeekday(code)
	for _, d := range days {
		if d == "weekend" {
			if IsWeekendCode(code) || name == "Saturday" || name == "Sunday" {
				return true
			}
			continue
		}
		if code == d || name == d || name == FormatWeekday(d) {
			return true
		}
	}
	return false
}

func matchesAnyTimeRange(m soc.Meeting, ranges []string) bool {
	minutes, ok := MinutesOfDay(m.StartTimeMilitary)
	if !ok {
		return false
	}
	for _, r := range ranges {
		switch r {
		case "morning":
			if minutes >= 480 && minutes < 660 {
				return true
			}
		case "afternoon":
			if minutes >= 660 && minutes < 960 {
				return true
			}
		case "evening":
			if minutes >= 960 && minutes < 1320 {
				return true
			}
		}
	}
	return false
}

func matchesAnyCampus(m soc.Meeting, campuses []string) bool {
	name := FormatCampus(m.CampusLocation)
	if m.CampusName != "" && name == m.CampusLocation {
		// Location ID didn't resolve; fall back to the free-text name
		name = m.CampusName
	}
	if name == "" {
		return false
	}
	for _, want := range campuses {
		if stringutil.ContainsEither(want, name) {
			return true
		}
	}
	return false
}
