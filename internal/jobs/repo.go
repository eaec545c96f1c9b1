package jobs

import (
	"context"
	"errors"
)

// ErrNoJobs indicates the job source has no postings to offer.
var ErrNoJobs = errors.New("no jobs available")

// Repo defines read access to the job source.
type Repo interface {
	List(ctx context.Context) ([]JobRecord, error)
}
