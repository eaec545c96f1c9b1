package sections

import (
	"strings"
	"testing"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567 | linkedin.com/in/janedoe

Summary
Seasoned backend engineer with 5+ years experience building data
pipelines and APIs for hiring platforms.

Skills
Python, Go, PostgreSQL, Docker
Kubernetes

Experience
2019 - 2022
Senior Engineer at Initech
Built the ingestion pipeline.

2022 - present
Staff Engineer at Globex
Leads the matching team.

Education
2011 - 2015
State University
B.Sc Computer Science
`

func TestParseContact(t *testing.T) {
	s := NewParser(DefaultConfig()).Parse(sampleResume)

	if s.Contact.Name != "Jane Doe" {
		t.Errorf("name = %q, want Jane Doe", s.Contact.Name)
	}
	if s.Contact.Email != "jane.doe@example.com" {
		t.Errorf("email = %q", s.Contact.Email)
	}
	if s.Contact.Phone == "" {
		t.Error("expected phone to be found")
	}
	if s.Contact.LinkedIn != "linkedin.com/in/janedoe" {
		t.Errorf("linkedin = %q", s.Contact.LinkedIn)
	}
	if s.Contact.YearsOfExperience != 5 {
		t.Errorf("years = %d, want 5", s.Contact.YearsOfExperience)
	}
	if !s.Contact.HasContact() {
		t.Error("HasContact should be true")
	}
}

func TestParseSkillsFromHeading(t *testing.T) {
	s := NewParser(DefaultConfig()).Parse(sampleResume)

	want := []string{"Python", "Go", "PostgreSQL", "Docker", "Kubernetes"}
	if len(s.Skills) != len(want) {
		t.Fatalf("skills = %v, want %v", s.Skills, want)
	}
	for i, skill := range want {
		if s.Skills[i] != skill {
			t.Errorf("skills[%d] = %q, want %q", i, s.Skills[i], skill)
		}
	}
}

func TestParseSkillsDictionaryFallback(t *testing.T) {
	p := NewParser(Config{
		Labels: map[string][]string{"skills": {"skills"}},
		SkillDictionary: []string{"python", "c++", "terraform"},
	})
	s := p.Parse("I spend my days writing Python services and Terraform modules.")

	if len(s.Skills) != 2 {
		t.Fatalf("skills = %v, want python and terraform", s.Skills)
	}
	if s.Skills[0] != "python" || s.Skills[1] != "terraform" {
		t.Errorf("skills = %v", s.Skills)
	}
}

func TestParseExperienceEntries(t *testing.T) {
	s := NewParser(DefaultConfig()).Parse(sampleResume)

	if len(s.Experience) != 2 {
		t.Fatalf("experience = %+v, want 2 entries", s.Experience)
	}
	first := s.Experience[0]
	if first.Title != "Senior Engineer" || first.Company != "Initech" {
		t.Errorf("first entry = %+v", first)
	}
	if !strings.Contains(first.Description, "ingestion pipeline") {
		t.Errorf("description = %q", first.Description)
	}
	second := s.Experience[1]
	if second.Company != "Globex" {
		t.Errorf("second entry = %+v", second)
	}
}

func TestParseEducationDegree(t *testing.T) {
	s := NewParser(DefaultConfig()).Parse(sampleResume)

	if len(s.Education) != 1 {
		t.Fatalf("education = %+v, want 1 entry", s.Education)
	}
	entry := s.Education[0]
	if entry.Institution != "State University" {
		t.Errorf("institution = %q", entry.Institution)
	}
	if !strings.EqualFold(entry.Degree, "B.Sc") {
		t.Errorf("degree = %q", entry.Degree)
	}
}

func TestParseSummaryFallbackParagraph(t *testing.T) {
	text := "Jane Doe\njane@example.com\n\n" +
		"An engineer who has spent a decade shipping distributed systems for logistics companies.\n\n" +
		"Random footer."
	s := NewParser(DefaultConfig()).Parse(text)

	if !strings.Contains(s.Summary, "distributed systems") {
		t.Errorf("summary = %q", s.Summary)
	}
}

func TestParseEmptyTextIsBenign(t *testing.T) {
	s := NewParser(DefaultConfig()).Parse("")
	if s.HasAny() {
		t.Errorf("expected empty sections, got %+v", s)
	}
	if s.Contact.HasContact() {
		t.Error("expected no contact details")
	}
}

func TestNameSkipsContactLines(t *testing.T) {
	s := NewParser(DefaultConfig()).Parse("jane@example.com\n(555) 123-4567\nJane Doe\n")
	if s.Contact.Name != "Jane Doe" {
		t.Errorf("name = %q", s.Contact.Name)
	}
}
