package draft

import (
	"testing"

	"github.com/qforge/qforge-backend/internal/model"
)

func qWithMarks(marks string) model.Question {
	return model.Question{Marks: marks}
}

func TestAssemblePaper_Totals(t *testing.T) {
	in := PaperInput{
		Title:   "Half-Yearly Physics",
		Board:   "CBSE",
		Grade:   "10",
		Subject: "Physics",
		Sections: []SectionInput{
			{Title: "Section A", Questions: []model.Question{qWithMarks("5"), qWithMarks("3")}},
			{Title: "Section B", Questions: []model.Question{qWithMarks("4")}},
		},
	}

	out := AssemblePaper(in)

	if out.Sections[0].SectionMarks != 8 || out.Sections[1].SectionMarks != 4 {
		t.Fatalf("section marks = %d, %d; want 8, 4",
			out.Sections[0].SectionMarks, out.Sections[1].SectionMarks)
	}
	if out.Marks != 12 {
		t.Fatalf("paper marks = %d, want 12", out.Marks)
	}
	if out.Title != "Half-Yearly Physics" || out.Board != "CBSE" {
		t.Fatalf("identity fields not carried through: %+v", out)
	}
}

func TestAssemblePaper_PreservesOrder(t *testing.T) {
	in := PaperInput{Sections: []SectionInput{
		{Title: "C"}, {Title: "A"}, {Title: "B"},
	}}
	out := AssemblePaper(in)
	for i, want := range []string{"C", "A", "B"} {
		if out.Sections[i].Title != want {
			t.Fatalf("sections[%d] = %q, want %q", i, out.Sections[i].Title, want)
		}
	}
}

func TestAssemblePaper_NoValidationOfMarks(t *testing.T) {
	// Zero and negative marks are summed as-is, not rejected.
	in := PaperInput{Sections: []SectionInput{
		{Questions: []model.Question{qWithMarks("-2"), qWithMarks("0"), qWithMarks("5")}},
	}}
	out := AssemblePaper(in)
	if out.Marks != 3 {
		t.Fatalf("marks = %d, want 3", out.Marks)
	}
}

func TestAssemblePaper_EmptySections(t *testing.T) {
	out := AssemblePaper(PaperInput{})
	if out.Marks != 0 || len(out.Sections) != 0 {
		t.Fatalf("got %+v, want zero totals", out)
	}
}

func TestCoerceMarks(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"5", 5},
		{" 12 ", 12},
		{"-3", -3},
		{"", 0},
		{"abc", 0},
		{"4.5", 0}, // marks are integers; fractional input counts as missing
	}
	for _, tc := range tests {
		if got := CoerceMarks(tc.in); got != tc.want {
			t.Errorf("CoerceMarks(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
