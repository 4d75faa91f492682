package rooms

import (
	"sort"

	"github.com/rusoc/rusoc-go/internal/course"
)

// ScheduleEntry is one scheduled meeting in a room.
type ScheduleEntry struct {
	Course        string   `json:"course"`
	Title         string   `json:"title"`
	Section       string   `json:"section"`
	Instructors   []string `json:"instructors"`
	Day           string   `json:"day"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	StartMilitary string   `json:"start_military"`
	EndMilitary   string   `json:"end_military"`
	Mode          string   `json:"mode"`
}

// Occupancy is the daily first-class/last-class span.
type Occupancy struct {
	FirstClass string `json:"first_class"`
	LastClass  string `json:"last_class"`
}

// Schedule is a room's weekly occupancy.
type Schedule struct {
	Building string `json:"building"`
	Room     string `json:"room"`

	// Days maps weekday names to entries sorted by start time;
	// unknown start times sort last. Every weekday is present.
	Days map[string][]ScheduleEntry `json:"schedule"`

	// DayStatus marks each weekday "available all day" or
	// "classes scheduled".
	DayStatus map[string]string `json:"day_status"`

	// OccupancyHours covers only days with at least one entry.
	OccupancyHours map[string]Occupancy `json:"occupancy_hours"`

	// Weekly is the flat Monday-to-Sunday view.
	Weekly []ScheduleEntry `json:"weekly"`
}

// Day statuses reported per weekday.
const (
	StatusAvailableAllDay  = "available all day"
	StatusClassesScheduled = "classes scheduled"
)

// tbaSentinel sorts unknown start times after every real time of day.
const tbaSentinel = 24 * 60

// RoomSchedule builds the weekly schedule for one exact (building, room)
// pair. Meetings elsewhere are ignored; meetings in the room with
// unparseable times are kept and sorted last within their day.
func RoomSchedule(building, room string, courses []course.EnrichedCourse) Schedule {
	sched := Schedule{
		Building:       building,
		Room:           room,
		Days:           make(map[string][]ScheduleEntry, len(course.WeekOrder)),
		DayStatus:      make(map[string]string, len(course.WeekOrder)),
		OccupancyHours: make(map[string]Occupancy),
	}
	for _, day := range course.WeekOrder {
		sched.Days[day] = []ScheduleEntry{}
	}

	for _, c := range courses {
		for _, s := range c.Sections {
			for _, m := range s.MeetingTimes {
				if m.Building != building || m.Room != room {
					continue
				}
				if _, known := sched.Days[m.Day]; !known {
					continue
				}
				sched.Days[m.Day] = append(sched.Days[m.Day], ScheduleEntry{
					Course:        c.CourseString,
					Title:         c.Title,
					Section:       s.Number,
					Instructors:   s.Instructors,
					Day:           m.Day,
					StartTime:     m.StartTime.Formatted,
					EndTime:       m.EndTime.Formatted,
					StartMilitary: m.StartTime.Military,
					EndMilitary:   m.EndTime.Military,
					Mode:          m.Mode,
				})
			}
		}
	}

	for _, day := range course.WeekOrder {
		entries := sched.Days[day]
		sort.SliceStable(entries, func(i, j int) bool {
			return startMinutes(entries[i]) < startMinutes(entries[j])
		})
		sched.Days[day] = entries

		if len(entries) == 0 {
			sched.DayStatus[day] = StatusAvailableAllDay
			continue
		}
		sched.DayStatus[day] = StatusClassesScheduled
		sched.OccupancyHours[day] = Occupancy{
			FirstClass: entries[0].StartTime,
			LastClass:  entries[len(entries)-1].EndTime,
		}
		sched.Weekly = append(sched.Weekly, entries...)
	}

	return sched
}

func startMinutes(e ScheduleEntry) int {
	if minutes, ok := course.ParseClockTime(e.StartMilitary); ok {
		return minutes
	}
	return tbaSentinel
}
