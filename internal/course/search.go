package course

import (
	"sort"
	"strings"

	"github.com/rusoc/rusoc-go/internal/fuzzy"
	"github.com/rusoc/rusoc-go/internal/namekit"
	"github.com/rusoc/rusoc-go/internal/soc"
	"github.com/rusoc/rusoc-go/internal/stringutil"
)

// DefaultThreshold is the minimum general fuzzy score for inclusion.
// It gates only the free-text fuzzy tier; exact and high-relevance
// matches ignore it.
const DefaultThreshold = 70

// instructorThreshold rescues single-typo instructor searches that the
// general threshold would reject.
const instructorThreshold = 75

// deptAbbrevs resolves common department shorthand to subject codes.
var deptAbbrevs = map[string]string{
	"cs":   "198", // Computer Science
	"math": "640", // Mathematics
	"bio":  "119", // Biology
	"chem": "160", // Chemistry
	"phys": "750", // Physics
	"stat": "960", // Statistics
	"econ": "220", // Economics
}

// queryClass is the result of classifying a free-text query.
// A specific query names a subject/number pair (or bare number) and
// switches search into precision mode: fuzzy matches are suppressed
// whenever any exact or high-relevance match exists.
type queryClass struct {
	specific bool
	subject  string // resolved subject code, empty for bare-number queries
	number   string
}

// classifyQuery detects structured course-code queries. Checked in
// priority order: "cs 111" style pairs, "198:111" style pairs, bare
// numbers; anything else is free text. The query must already be
// lowercased and trimmed.
func classifyQuery(query string) queryClass {
	if parts := strings.Fields(query); len(parts) == 2 && stringutil.IsNumeric(parts[1]) {
		subject := parts[0]
		if code, ok := deptAbbrevs[subject]; ok {
			subject = code
		}
		return queryClass{specific: true, subject: subject, number: parts[1]}
	}

	if strings.Contains(query, ":") {
		if subject, number, _ := strings.Cut(query, ":"); stringutil.IsNumeric(number) {
			return queryClass{specific: true, subject: subject, number: number}
		}
	}

	if stringutil.IsNumeric(query) {
		return queryClass{specific: true, number: query}
	}

	return queryClass{}
}

// scoredMatch pairs a candidate courseString with a tier score.
type scoredMatch struct {
	score int
	key   string
}

// Search ranks courses against a free-text query. Matching runs in
// three tiers (exact, high-relevance, fuzzy); results are deduplicated
// by courseString with the highest score winning, then every raw record
// sharing a winning courseString is emitted in descending score order.
// threshold applies only to the general fuzzy tier; pass
// DefaultThreshold unless tuning.
func Search(courses []soc.Course, query string, threshold int) []soc.Course {
	query = stringutil.NormalizeLower(query)
	qc := classifyQuery(query)

	groups := make(map[string][]soc.Course)
	groupOrder := make(map[string]int)

	var exact, high, fuzzyMatches []scoredMatch

	for _, course := range courses {
		courseString := strings.ToLower(course.CourseString)
		subject := strings.ToLower(course.Subject)
		number := strings.ToLower(course.CourseNumber)
		title := strings.ToLower(course.Title)
		subjectDesc := strings.ToLower(course.SubjectDescription)

		if _, seen := groups[courseString]; !seen {
			groupOrder[courseString] = len(groupOrder)
		}
		groups[courseString] = append(groups[courseString], course)

		if query == title {
			exact = append(exact, scoredMatch{100, courseString})
			continue
		}

		// A bare "cs" query fuzzy-matches far too many unrelated
		// subject descriptions; pin it to the CS department.
		if query == "cs" && subject != "198" {
			continue
		}

		instructors := instructorVariants(course)

		if _, ok := instructors[query]; ok {
			high = append(high, scoredMatch{92, courseString})
		}

		if best := bestInstructorScore(query, instructors); best >= instructorThreshold {
			fuzzyMatches = append(fuzzyMatches, scoredMatch{best, courseString})
		}

		if qc.specific {
			switch {
			case qc.subject != "" && subject == qc.subject && number == qc.number:
				exact = append(exact, scoredMatch{100, courseString})
				continue
			case qc.subject == "" && number == qc.number:
				exact = append(exact, scoredMatch{95, courseString})
				continue
			case isDeptAbbrev(qc.subject) && subject == "198" && number == qc.number:
				// Colon queries keep the literal abbreviation,
				// e.g. "cs:111"
				exact = append(exact, scoredMatch{98, courseString})
				continue
			case qc.subject != "" && strings.Contains(subjectDesc, qc.subject) && number == qc.number:
				high = append(high, scoredMatch{90, courseString})
				continue
			}
		}

		if query == courseString || query == subject+":"+number {
			exact = append(exact, scoredMatch{100, courseString})
			continue
		}

		if query == number || query == subject {
			high = append(high, scoredMatch{85, courseString})
			continue
		}

		// Specific course queries never fall through to general fuzzy
		// matching; that would surface unrelated courses.
		if qc.specific {
			continue
		}

		score := generalFuzzyScore(query, courseString, title, subject, number, subjectDesc, instructors)
		if score >= threshold {
			fuzzyMatches = append(fuzzyMatches, scoredMatch{score, courseString})
		}
	}

	best := make(map[string]int)
	for _, m := range exact {
		best[m.key] = m.score
	}
	for _, m := range high {
		if cur, ok := best[m.key]; !ok || m.score > cur {
			best[m.key] = m.score
		}
	}
	if !qc.specific || len(best) == 0 {
		for _, m := range fuzzyMatches {
			if cur, ok := best[m.key]; !ok || m.score > cur {
				best[m.key] = m.score
			}
		}
	}

	ranked := make([]scoredMatch, 0, len(best))
	for key, score := range best {
		ranked = append(ranked, scoredMatch{score, key})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return groupOrder[ranked[i].key] < groupOrder[ranked[j].key]
	})

	var matched []soc.Course
	for _, m := range ranked {
		matched = append(matched, groups[m.key]...)
	}
	return matched
}

func isDeptAbbrev(s string) bool {
	_, ok := deptAbbrevs[s]
	return ok
}

// instructorVariants aggregates normalized name variants over every
// section's every instructor.
func instructorVariants(c soc.Course) map[string]struct{} {
	variants := make(map[string]struct{})
	for _, s := range c.Sections {
		for _, instr := range s.Instructors {
			for v := range namekit.Variants(instr.Name) {
				variants[v] = struct{}{}
			}
		}
	}
	return variants
}

func bestInstructorScore(query string, variants map[string]struct{}) int {
	best := 0
	for v := range variants {
		if score := fuzzy.BestScore(query, v); score > best {
			best = score
		}
	}
	return best
}

func generalFuzzyScore(query, courseString, title, subject, number, subjectDesc string, instructors map[string]struct{}) int {
	best := fuzzy.TokenSetRatio(query, courseString)
	for _, target := range []string{title, subject, number, subjectDesc} {
		if score := fuzzy.TokenSetRatio(query, target); score > best {
			best = score
		}
	}

	if len(instructors) > 0 {
		names := make([]string, 0, len(instructors))
		for v := range instructors {
			names = append(names, v)
		}
		sort.Strings(names)
		if score := fuzzy.TokenSetRatio(query, strings.Join(names, " ")); score > best {
			best = score
		}
	}

	return best
}
