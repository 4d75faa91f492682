package course

import (
	"testing"

	"github.com/rusoc/rusoc-go/internal/soc"
)

func filterFixture() []soc.Course {
	return []soc.Course{
		{
			CourseString: "01:198:111",
			Subject:      "198",
			CourseNumber: "111",
			School:       soc.School{Code: "01", Description: "School of Arts and Sciences"},
			CoreCodes:    []soc.CoreCode{{CoreCode: "QQ"}},
			Sections: []soc.Section{
				{
					OpenStatusText: "OPEN",
					MeetingTimes: []soc.Meeting{
						{
							MeetingDay:        "M",
							StartTimeMilitary: "1020",
							EndTimeMilitary:   "1140",
							CampusLocation:    "2",
							MeetingModeDesc:   "LEC",
						},
					},
				},
			},
		},
		{
			CourseString: "01:640:152",
			Subject:      "640",
			CourseNumber: "152",
			School:       soc.School{Code: "01", Description: "School of Arts and Sciences"},
			Sections: []soc.Section{
				{
					OpenStatusText: "CLOSED",
					MeetingTimes: []soc.Meeting{
						{
							MeetingDay:        "S",
							StartTimeMilitary: "1800",
							EndTimeMilitary:   "2100",
							CampusLocation:    "1",
							MeetingModeDesc:   "Online Instruction",
						},
					},
				},
			},
		},
		{
			// Sectionless bookkeeping record
			CourseString: "01:090:101",
			Subject:      "090",
			CourseNumber: "101",
			School:       soc.School{Code: "11", Description: "School of Engineering"},
		},
	}
}

func courseStrings(courses []soc.Course) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.CourseString)
	}
	return out
}

func assertCourses(t *testing.T, got []soc.Course, want ...string) {
	t.Helper()
	gotStrings := courseStrings(got)
	if len(gotStrings) != len(want) {
		t.Fatalf("got %v, want %v", gotStrings, want)
	}
	for i := range want {
		if gotStrings[i] != want[i] {
			t.Fatalf("got %v, want %v", gotStrings, want)
		}
	}
}

func TestApplyFiltersEmptySetIsIdentity(t *testing.T) {
	t.Parallel()

	courses := filterFixture()
	got := ApplyFilters(courses, FilterSet{})
	assertCourses(t, got, "01:198:111", "01:640:152", "01:090:101")
}

func TestApplyFiltersSubject(t *testing.T) {
	t.Parallel()

	got := ApplyFilters(filterFixture(), FilterSet{Subject: "198"})
	assertCourses(t, got, "01:198:111")

	// Subject present but empty is a no-op
	got = ApplyFilters(filterFixture(), FilterSet{Subject: "  "})
	assertCourses(t, got, "01:198:111", "01:640:152", "01:090:101")
}

func TestApplyFiltersSchool(t *testing.T) {
	t.Parallel()

	// By code
	got := ApplyFilters(filterFixture(), FilterSet{School: "11"})
	assertCourses(t, got, "01:090:101")

	// By description fragment
	got = ApplyFilters(filterFixture(), FilterSet{School: "Arts"})
	assertCourses(t, got, "01:198:111", "01:640:152")
}

func TestApplyFiltersCoreCode(t *testing.T) {
	t.Parallel()

	got := ApplyFilters(filterFixture(), FilterSet{CoreCode: "QQ"})
	assertCourses(t, got, "01:198:111")
}

func TestApplyFiltersStatus(t *testing.T) {
	t.Parallel()

	got := ApplyFilters(filterFixture(), FilterSet{Status: []string{"open"}})
	assertCourses(t, got, "01:198:111")

	got = ApplyFilters(filterFixture(), FilterSet{Status: []string{"open", "closed"}})
	assertCourses(t, got, "01:198:111", "01:640:152")
}

func TestApplyFiltersSectionlessExcludedBySectionKeys(t *testing.T) {
	t.Parallel()

	// A section-dependent key drops the sectionless course
	got := ApplyFilters(filterFixture(), FilterSet{Campus: []string{"Busch"}})
	assertCourses(t, got, "01:198:111")

	// A course-level key alone keeps it
	got = ApplyFilters(filterFixture(), FilterSet{School: "Engineering"})
	assertCourses(t, got, "01:090:101")
}

func TestApplyFiltersDays(t *testing.T) {
	t.Parallel()

	got := ApplyFilters(filterFixture(), FilterSet{Days: []string{"M"}})
	assertCourses(t, got, "01:198:111")

	// Full names work too
	got = ApplyFilters(filterFixture(), FilterSet{Days: []string{"Monday"}})
	assertCourses(t, got, "01:198:111")

	got = ApplyFilters(filterFixture(), FilterSet{Days: []string{"weekend"}})
	assertCourses(t, got, "01:640:152")
}

func TestApplyFiltersTimeRange(t *testing.T) {
	t.Parallel()

	got := ApplyFilters(filterFixture(), FilterSet{TimeRange: []string{"morning"}})
	assertCourses(t, got, "01:198:111")

	got = ApplyFilters(filterFixture(), FilterSet{TimeRange: []string{"evening"}})
	assertCourses(t, got, "01:640:152")

	got = ApplyFilters(filterFixture(), FilterSet{TimeRange: []string{"afternoon"}})
	assertCourses(t, got)
}

func TestApplyFiltersCourseType(t *testing.T) {
	t.Parallel()

	got := ApplyFilters(filterFixture(), FilterSet{CourseType: []string{"traditional"}})
	assertCourses(t, got, "01:198:111")

	got = ApplyFilters(filterFixture(), FilterSet{CourseType: []string{"online"}})
	assertCourses(t, got, "01:640:152")

	got = ApplyFilters(filterFixture(), FilterSet{CourseType: []string{"hybrid"}})
	assertCourses(t, got)
}

func TestApplyFiltersCampus(t *testing.T) {
	t.Parallel()

	got := ApplyFilters(filterFixture(), FilterSet{Campus: []string{"busch"}})
	assertCourses(t, got, "01:198:111")

	// Containment runs both ways
	got = ApplyFilters(filterFixture(), FilterSet{Campus: []string{"College Avenue Campus"}})
	assertCourses(t, got, "01:640:152")
}

func TestApplyFiltersCombineWithAnd(t *testing.T) {
	t.Parallel()

	got := ApplyFilters(filterFixture(), FilterSet{
		School:    "Arts",
		Status:    []string{"open"},
		TimeRange: []string{"morning"},
	})
	assertCourses(t, got, "01:198:111")

	got = ApplyFilters(filterFixture(), FilterSet{
		School:    "Arts",
		Status:    []string{"open"},
		TimeRange: []string{"evening"},
	})
	assertCourses(t, got)
}
