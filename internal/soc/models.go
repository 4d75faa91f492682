// Package soc fetches raw course-offering data from the university's
// Schedule of Classes API and decodes it into typed records.
//
// All fields are optional upstream; missing fields decode to zero values
// and are mapped to "N/A" sentinels at the enrichment boundary, never here.
package soc

import (
	"bytes"
	"encoding/json"
)

// Course is one raw course offering as returned by the upstream API.
// Identity for deduplication purposes is CourseString; several raw records
// may share one CourseString and are treated as a single logical course.
type Course struct {
	CourseString       string           `json:"courseString"`
	Subject            string           `json:"subject"`
	CourseNumber       string           `json:"courseNumber"`
	Title              string           `json:"title"`
	CourseDescription  string           `json:"courseDescription"`
	SubjectDescription string           `json:"subjectDescription"`
	PreReqNotes        string           `json:"preReqNotes"`
	Credits            FlexString       `json:"credits"`
	CreditsObject      CreditsObject    `json:"creditsObject"`
	School             School           `json:"school"`
	CampusLocations    []CampusLocation `json:"campusLocations"`
	CoreCodes          []CoreCode       `json:"coreCodes"`
	Sections           []Section        `json:"sections"`
}

// School is the owning school/unit descriptor.
type School struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// CreditsObject carries the human-readable credit description.
type CreditsObject struct {
	Description string `json:"description"`
}

// CampusLocation is one campus a course is offered on.
type CampusLocation struct {
	Description string `json:"description"`
}

// CoreCode is one core-requirement tag.
type CoreCode struct {
	CoreCode            string `json:"coreCode"`
	CoreCodeDescription string `json:"coreCodeDescription"`
}

// Section is one section of a course.
type Section struct {
	Number         string       `json:"number"`
	Index          string       `json:"index"`
	OpenStatusText string       `json:"openStatusText"`
	CommentsText   string       `json:"commentsText"`
	Instructors    []Instructor `json:"instructors"`
	MeetingTimes   []Meeting    `json:"meetingTimes"`
}

// Instructor is a section instructor. Names arrive in mixed
// "LAST, FIRST" and "First Last" formats.
type Instructor struct {
	Name string `json:"name"`
}

// Meeting is one scheduled occurrence of a section.
// Time fields are 4-digit military times or the "N/A" sentinel;
// both fields share the same validity.
type Meeting struct {
	MeetingDay        string `json:"meetingDay"`
	StartTimeMilitary string `json:"startTimeMilitary"`
	EndTimeMilitary   string `json:"endTimeMilitary"`
	BuildingCode      string `json:"buildingCode"`
	BuildingName      string `json:"buildingName"`
	RoomNumber        string `json:"roomNumber"`
	CampusLocation    string `json:"campusLocation"`
	CampusName        string `json:"campusName"`
	MeetingModeDesc   string `json:"meetingModeDesc"`
}

// FlexString decodes a JSON value that may arrive as a string, a number,
// or null, and stores its string form. The upstream API is inconsistent
// about the credits field across terms.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// MarshalJSON implements json.Marshaler; always emits a string.
func (f FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// String returns the stored string form.
func (f FlexString) String() string {
	return string(f)
}
