package jobs

import "context"

// Service contains business logic for the job source.
type Service struct {
	Repo Repo
}

// List returns all available postings. An empty list is reported as
// ErrNoJobs so callers can distinguish "nothing to score" from a source
// failure.
func (s *Service) List(ctx context.Context) ([]JobRecord, error) {
	out, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoJobs
	}
	return out, nil
}
