package analyze

import (
	"context"
	"errors"
	"testing"

	"github.com/SHIVANSHU-TECH/ApplyAI/internal/extract"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/jobs"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/keywords"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/llm"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/match"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/sections"
)

type stubJobsRepo struct {
	jobs []jobs.JobRecord
	err  error
}

func (s *stubJobsRepo) List(ctx context.Context) ([]jobs.JobRecord, error) {
	return s.jobs, s.err
}

func testJobs() []jobs.JobRecord {
	return []jobs.JobRecord{
		{ID: "j1", Title: "React Developer", Description: "Frontend", Skills: []string{"React"}},
		{ID: "j2", Title: "Python Engineer", Description: "Backend", Skills: []string{"Python"}},
	}
}

func newTestService(repo jobs.Repo) *Service {
	return &Service{
		Parser:   sections.NewParser(sections.DefaultConfig()),
		Keywords: keywords.NewExtractor(keywords.DefaultDictionary()),
		Jobs:     &jobs.Service{Repo: repo},
		Scorer:   &match.Scorer{Remote: llm.Disabled{}},
	}
}

func TestAnalyzeRejectsEmptyInput(t *testing.T) {
	svc := newTestService(&stubJobsRepo{jobs: testJobs()})
	if _, err := svc.Analyze(context.Background(), Input{}); !errors.Is(err, ErrNoInput) {
		t.Fatalf("err = %v, want ErrNoInput", err)
	}
}

func TestAnalyzeTextScenario(t *testing.T) {
	svc := newTestService(&stubJobsRepo{jobs: testJobs()})

	out, err := svc.Analyze(context.Background(), Input{
		ResumeText: "5+ years experience in Python and React. Email: a@b.com",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	kws := map[string]bool{}
	for _, kw := range out.Extraction.Keywords {
		kws[kw] = true
	}
	if !kws["python"] || !kws["react"] {
		t.Errorf("keywords = %v, want python and react", out.Extraction.Keywords)
	}
	if out.Extraction.Sections == nil {
		t.Fatal("expected sections")
	}
	if out.Extraction.Sections.Contact.Email != "a@b.com" {
		t.Errorf("email = %q", out.Extraction.Sections.Contact.Email)
	}
	if out.Extraction.Sections.Contact.YearsOfExperience != 5 {
		t.Errorf("years = %d", out.Extraction.Sections.Contact.YearsOfExperience)
	}
	if out.Extraction.TextLength != len(out.Extraction.RawText) {
		t.Error("textLength must equal len(rawText)")
	}
	if len(out.Recommendations) != 2 {
		t.Errorf("recommendations = %+v", out.Recommendations)
	}
}

func TestAnalyzeManualSkillsAreUnioned(t *testing.T) {
	svc := newTestService(&stubJobsRepo{jobs: testJobs()})

	out, err := svc.Analyze(context.Background(), Input{Skills: "Go, Distributed Systems"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	// Manual entries are lowercased but never re-tokenized.
	want := []string{"go", "distributed systems"}
	if len(out.Extraction.Keywords) != 2 ||
		out.Extraction.Keywords[0] != want[0] || out.Extraction.Keywords[1] != want[1] {
		t.Errorf("keywords = %v, want %v", out.Extraction.Keywords, want)
	}
}

func TestAnalyzeCSVDocument(t *testing.T) {
	svc := newTestService(&stubJobsRepo{jobs: testJobs()})

	out, err := svc.Analyze(context.Background(), Input{
		Document: &extract.Document{
			Data:     []byte("Name,Skills\nJane,Python;React"),
			FileName: "resume.csv",
		},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if out.Extraction.RawText == "" {
		t.Fatal("expected extracted text")
	}
}

func TestAnalyzeSurfacesFormatParseError(t *testing.T) {
	svc := newTestService(&stubJobsRepo{jobs: testJobs()})

	_, err := svc.Analyze(context.Background(), Input{
		Document: &extract.Document{Data: []byte("not a zip"), FileName: "resume.docx"},
	})
	var parseErr *extract.FormatParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err = %v, want FormatParseError", err)
	}
}

func TestAnalyzeNoJobsIsDistinct(t *testing.T) {
	svc := newTestService(&stubJobsRepo{})
	_, err := svc.Analyze(context.Background(), Input{Skills: "go"})
	if !errors.Is(err, jobs.ErrNoJobs) {
		t.Fatalf("err = %v, want ErrNoJobs", err)
	}
}
