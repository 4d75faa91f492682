package sliceutil

import "testing"

func TestDeduplicate(t *testing.T) {
	t.Parallel()

	type course struct {
		CourseString string
		Section      string
	}

	courses := []course{
		{"198:111", "01"},
		{"640:152", "02"},
		{"198:111", "03"},
		{"640:152", "01"},
	}

	unique := Deduplicate(courses, func(c course) string { return c.CourseString })

	if len(unique) != 2 {
		t.Fatalf("expected 2 unique courses, got %d", len(unique))
	}
	// First occurrence wins
	if unique[0].CourseString != "198:111" || unique[0].Section != "01" {
		t.Errorf("unexpected first element: %+v", unique[0])
	}
	if unique[1].CourseString != "640:152" || unique[1].Section != "02" {
		t.Errorf("unexpected second element: %+v", unique[1])
	}
}

func TestDeduplicateEmpty(t *testing.T) {
	t.Parallel()

	var empty []string
	if got := Deduplicate(empty, func(s string) string { return s }); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
