package rooms

import (
	"sort"
	"strings"

	"github.com/rusoc/rusoc-go/internal/course"
	"github.com/rusoc/rusoc-go/internal/fuzzy"
	"github.com/rusoc/rusoc-go/internal/stringutil"
)

// SearchThreshold is the minimum weighted fuzzy score for a room to be
// included when no direct substring match exists.
const SearchThreshold = 50

// fieldWeights rank which room field a fuzzy hit is worth most on.
// A full-name hit beats a building-name hit beats a bare code hit.
var fieldWeights = []struct {
	field  func(Room) string
	weight int
}{
	{func(r Room) string { return r.FullName }, 100},
	{func(r Room) string { return r.BuildingName + " " + r.Room }, 95},
	{func(r Room) string { return r.Building }, 90},
	{func(r Room) string { return r.Room }, 80},
}

// SearchRooms ranks rooms against a free-text query. An empty query
// returns every room. Direct substring matches short-circuit the fuzzy
// pass: when any exist, only those are returned, in room order.
// Otherwise each room scores as its best field score scaled by the
// field's weight, and rooms at or above SearchThreshold are returned in
// descending score order.
func SearchRooms(query string, courses []course.EnrichedCourse) []Room {
	all := AllRooms(courses)
	query = stringutil.NormalizeLower(query)
	if query == "" {
		return all
	}

	var direct []Room
	for _, r := range all {
		if directMatch(query, r) {
			direct = append(direct, r)
		}
	}
	if len(direct) > 0 {
		return direct
	}

	type scoredRoom struct {
		room  Room
		score int
	}
	var scored []scoredRoom
	for _, r := range all {
		if score := weightedScore(query, r); score >= SearchThreshold {
			scored = append(scored, scoredRoom{r, score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	out := make([]Room, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.room)
	}
	return out
}

func directMatch(query string, r Room) bool {
	targets := []string{
		r.FullName,
		r.BuildingName + " " + r.Room,
		r.Building + r.Room,
	}
	for _, t := range targets {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}

func weightedScore(query string, r Room) int {
	best := 0
	for _, fw := range fieldWeights {
		target := stringutil.NormalizeLower(fw.field(r))
		if target == "" || target == strings.ToLower(course.NotAvailable) {
			continue
		}
		score := fuzzy.BestScore(query, target) * fw.weight / 100
		if score > best {
			best = score
		}
	}
	return best
}
