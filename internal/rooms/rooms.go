// Package rooms derives physical-room views from enriched course data:
// the room universe, fuzzy room search, weekly schedules and
// availability windows. Everything here is a pure function over the
// course list; rooms have no lifecycle of their own.
package rooms

import (
	"sort"

	"github.com/rusoc/rusoc-go/internal/course"
	"github.com/rusoc/rusoc-go/internal/sliceutil"
)

// Room is one physical room. Identity is (Building, Room); campus and
// building name are informational since upstream labels them
// inconsistently across meetings of the same room.
type Room struct {
	Building     string `json:"building"`
	Room         string `json:"room"`
	Campus       string `json:"campus"`
	BuildingName string `json:"building_name"`
	FullName     string `json:"full_name"`
}

// Key returns the identity key for deduplication.
func (r Room) Key() string {
	return r.Building + "_" + r.Room
}

// AllRooms extracts the unique rooms referenced by any meeting of any
// section. Meetings without a concrete location are skipped. The first
// meeting seen for a room supplies its representative campus and
// building name. Results are sorted by building then room.
func AllRooms(courses []course.EnrichedCourse) []Room {
	var found []Room
	for _, c := range courses {
		for _, s := range c.Sections {
			for _, m := range s.MeetingTimes {
				if !hasLocation(m) {
					continue
				}
				found = append(found, Room{
					Building:     m.Building,
					Room:         m.Room,
					Campus:       m.Campus,
					BuildingName: m.BuildingName,
					FullName:     m.Building + " " + m.Room,
				})
			}
		}
	}

	unique := sliceutil.Deduplicate(found, Room.Key)
	sort.Slice(unique, func(i, j int) bool {
		if unique[i].Building != unique[j].Building {
			return unique[i].Building < unique[j].Building
		}
		return unique[i].Room < unique[j].Room
	})
	return unique
}

func hasLocation(m course.EnrichedMeeting) bool {
	return m.Building != "" && m.Building != course.NotAvailable &&
		m.Room != "" && m.Room != course.NotAvailable
}
