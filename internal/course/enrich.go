package course

import "github.com/rusoc/rusoc-go/internal/soc"

// EnrichedCourse is the public course shape served to clients.
type EnrichedCourse struct {
	CourseString       string            `json:"courseString"`
	Title              string            `json:"title"`
	Subject            string            `json:"subject"`
	SubjectDescription string            `json:"subjectDescription"`
	CourseNumber       string            `json:"course_number"`
	Description        string            `json:"description"`
	Credits            string            `json:"credits"`
	CreditsDescription string            `json:"creditsDescription"`
	School             string            `json:"school"`
	CampusLocations    []string          `json:"campusLocations"`
	Prerequisites      string            `json:"prerequisites"`
	CoreRequirements   []CoreRequirement `json:"coreRequirements"`
	Sections           []EnrichedSection `json:"sections"`
}

// CoreRequirement is one core-curriculum tag.
type CoreRequirement struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// EnrichedSection is the public section shape.
type EnrichedSection struct {
	Number       string            `json:"number"`
	Index        string            `json:"index"`
	Instructors  []string          `json:"instructors"`
	Status       string            `json:"status"`
	Comments     string            `json:"comments"`
	MeetingTimes []EnrichedMeeting `json:"meeting_times"`
}

// EnrichedMeeting is the public meeting shape. Location fields use the
// "N/A" sentinel when the upstream record omits them.
type EnrichedMeeting struct {
	Day          string    `json:"day"`
	StartTime    TimeOfDay `json:"start_time"`
	EndTime      TimeOfDay `json:"end_time"`
	Building     string    `json:"building"`
	BuildingName string    `json:"building_name"`
	Room         string    `json:"room"`
	Mode         string    `json:"mode"`
	Campus       string    `json:"campus"`
}

// TimeOfDay carries both the raw military time and its display form.
type TimeOfDay struct {
	Military  string `json:"military"`
	Formatted string `json:"formatted"`
}

// Enrich reshapes one raw course into the public shape. Missing fields
// become "N/A" sentinels or empty collections; this is a pure reshape
// with no matching logic and it never fails.
func Enrich(c soc.Course) EnrichedCourse {
	campuses := make([]string, 0, len(c.CampusLocations))
	for _, loc := range c.CampusLocations {
		campuses = append(campuses, loc.Description)
	}

	cores := make([]CoreRequirement, 0, len(c.CoreCodes))
	for _, core := range c.CoreCodes {
		cores = append(cores, CoreRequirement{
			Code:        core.CoreCode,
			Description: core.CoreCodeDescription,
		})
	}

	sections := make([]EnrichedSection, 0, len(c.Sections))
	for _, s := range c.Sections {
		sections = append(sections, enrichSection(s))
	}

	return EnrichedCourse{
		CourseString:       c.CourseString,
		Title:              c.Title,
		Subject:            c.Subject,
		SubjectDescription: c.SubjectDescription,
		CourseNumber:       c.CourseNumber,
		Description:        c.CourseDescription,
		Credits:            c.Credits.String(),
		CreditsDescription: c.CreditsObject.Description,
		School:             c.School.Description,
		CampusLocations:    campuses,
		Prerequisites:      c.PreReqNotes,
		CoreRequirements:   cores,
		Sections:           sections,
	}
}

// EnrichAll reshapes a course list, preserving order.
func EnrichAll(courses []soc.Course) []EnrichedCourse {
	out := make([]EnrichedCourse, 0, len(courses))
	for _, c := range courses {
		out = append(out, Enrich(c))
	}
	return out
}

func enrichSection(s soc.Section) EnrichedSection {
	instructors := make([]string, 0, len(s.Instructors))
	for _, instr := range s.Instructors {
		instructors = append(instructors, instr.Name)
	}

	meetings := make([]EnrichedMeeting, 0, len(s.MeetingTimes))
	for _, m := range s.MeetingTimes {
		meetings = append(meetings, enrichMeeting(m))
	}

	return EnrichedSection{
		Number:       s.Number,
		Index:        s.Index,
		Instructors:  instructors,
		Status:       s.OpenStatusText,
		Comments:     s.CommentsText,
		MeetingTimes: meetings,
	}
}

func enrichMeeting(m soc.Meeting) EnrichedMeeting {
	start := orSentinel(m.StartTimeMilitary)
	end := orSentinel(m.EndTimeMilitary)

	return EnrichedMeeting{
		Day: FormatWeekday(m.MeetingDay),
		StartTime: TimeOfDay{
			Military:  start,
			Formatted: FormatTime(start),
		},
		EndTime: TimeOfDay{
			Military:  end,
			Formatted: FormatTime(end),
		},
		Building:     orSentinel(m.BuildingCode),
		BuildingName: orSentinel(m.BuildingName),
		Room:         orSentinel(m.RoomNumber),
		Mode:         orSentinel(m.MeetingModeDesc),
		Campus:       FormatCampus(orSentinel(m.CampusLocation)),
	}
}

func orSentinel(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
