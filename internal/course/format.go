// Package course implements the search, filter and enrichment pipeline
// over raw course snapshots.
package course

import (
	"strconv"
	"strings"
)

// NotAvailable is the sentinel for missing or unparseable upstream values.
const NotAvailable = "N/A"

// weekdayNames maps upstream weekday codes to full names.
var weekdayNames = map[string]string{
	"M":  "Monday",
	"T":  "Tuesday",
	"W":  "Wednesday",
	"H":  "Thursday",
	"F":  "Friday",
	"S":  "Saturday",
	"Su": "Sunday",
}

// WeekOrder is the display order for weekday buckets.
var WeekOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// campusIDToName maps upstream campus location IDs to campus names.
var campusIDToName = map[string]string{
	"1": "College Ave",
	"2": "Busch",
	"3": "Livingston",
	"4": "Cook/Doug",
}

// CampusAbbrevToName maps short campus codes used in client requests.
var CampusAbbrevToName = map[string]string{
	"CA":  "College Ave",
	"BU":  "Busch",
	"LIV": "Livingston",
	"CD":  "Cook/Doug",
}

// FormatWeekday converts a weekday code to its full name.
// Unknown codes pass through unchanged.
func FormatWeekday(code string) string {
	if name, ok := weekdayNames[code]; ok {
		return name
	}
	return code
}

// FormatCampus converts a campus location ID to a campus name.
// Unknown IDs pass through unchanged.
func FormatCampus(id string) string {
	if name, ok := campusIDToName[id]; ok {
		return name
	}
	return id
}

// IsWeekendCode reports whether a weekday code is Saturday or Sunday.
func IsWeekendCode(code string) bool {
	return code == "S" || code == "Su"
}

// FormatTime converts a 4-digit military time to 12-hour "H:MM AM/PM"
// form with no leading zero. Missing or invalid input yields "N/A";
// this function never fails.
func FormatTime(military string) string {
	hour, minute, ok := splitMilitary(military)
	if !ok {
		return NotAvailable
	}

	suffix := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		suffix = "PM"
	case hour > 12:
		hour -= 12
		suffix = "PM"
	}

	return strconv.Itoa(hour) + ":" + pad2(minute) + " " + suffix
}

// MinutesOfDay converts a military time to minutes since midnight.
func MinutesOfDay(military string) (int, bool) {
	hour, minute, ok := splitMilitary(military)
	if !ok {
		return 0, false
	}
	return hour*60 + minute, true
}

func splitMilitary(military string) (hour, minute int, ok bool) {
	s := strings.TrimSpace(military)
	if s == "" || s == NotAvailable || len(s) > 4 {
		return 0, 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, 0, false
	}
	hour, minute = n/100, n%100
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// ParseClockTime parses a time in either 12-hour "H:MM AM/PM" or 4-digit
// military form into minutes since midnight.
func ParseClockTime(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, NotAvailable) || strings.EqualFold(s, "TBA") {
		return 0, false
	}

	upper := strings.ToUpper(s)
	if suffix := clockSuffix(upper); suffix != "" {
		body := strings.TrimSpace(strings.TrimSuffix(upper, suffix))
		hh, mm, found := strings.Cut(body, ":")
		if !found {
			hh, mm = body, "0"
		}
		hour, err1 := strconv.Atoi(strings.TrimSpace(hh))
		minute, err2 := strconv.Atoi(strings.TrimSpace(mm))
		if err1 != nil || err2 != nil || hour < 1 || hour > 12 || minute < 0 || minute > 59 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
		if suffix == "PM" {
			hour += 12
		}
		return hour*60 + minute, true
	}

	return MinutesOfDay(s)
}

func clockSuffix(upper string) string {
	switch {
	case strings.HasSuffix(upper, "AM"):
		return "AM"
	case strings.HasSuffix(upper, "PM"):
		return "PM"
	default:
		return ""
	}
}
