// Package match scores job records against an extracted candidate
// profile. The remote AI scorer is preferred; anything that goes wrong on
// that path (timeout, transport failure, garbage output) drops to a
// deterministic local scorer, so Score never fails.
package match

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/SHIVANSHU-TECH/ApplyAI/internal/jobs"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/llm"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/metrics"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/telemetry"
)

// fallbackJobCap bounds how many jobs the local scorer reports on.
const fallbackJobCap = 6

// Input is the candidate side of a scoring request.
type Input struct {
	Text     string
	Keywords []string
}

// Result is one scored job: the original job record merged with the
// scoring verdict. Original job fields always win over remote output.
type Result struct {
	jobs.JobRecord
	MatchScore     int      `json:"matchScore"`
	Reasons        []string `json:"reasons"`
	Notes          string   `json:"notes,omitempty"`
	Recommendation string   `json:"recommendation"`
}

// Scorer runs the two-tier scoring protocol.
type Scorer struct {
	Remote llm.Scorer
}

// Score produces one Result per matchable job. It degrades internally and
// never returns an error; an empty job list yields an empty result set.
func (s *Scorer) Score(ctx context.Context, input Input, list []jobs.JobRecord) []Result {
	if len(list) == 0 {
		return nil
	}

	raw, err := s.Remote.ScoreJobs(ctx, candidateText(input), list)
	if err != nil {
		telemetry.Warn("remote scorer unavailable, using local fallback", map[string]any{"error": err.Error()})
		metrics.IncScoreFallback()
		return s.Fallback(input, list)
	}

	results := mergeRemote(raw, list)
	if len(results) == 0 {
		telemetry.Warn("remote scorer output unusable, using local fallback", nil)
		metrics.IncScoreFallback()
		return s.Fallback(input, list)
	}
	return results
}

// Fallback computes deterministic keyword-overlap scores for the first
// fallbackJobCap jobs. Never empty unless the job list is.
func (s *Scorer) Fallback(input Input, list []jobs.JobRecord) []Result {
	n := len(list)
	if n > fallbackJobCap {
		n = fallbackJobCap
	}

	out := make([]Result, 0, n)
	for _, job := range list[:n] {
		corpus := jobCorpus(job)
		var matched []string
		for _, kw := range input.Keywords {
			if strings.Contains(corpus, strings.ToLower(kw)) {
				matched = append(matched, kw)
			}
		}

		score := 30
		if len(input.Keywords) > 0 {
			ratio := float64(len(matched)) / float64(len(input.Keywords))
			score = int(math.Round(30 + ratio*60))
			if score > 95 {
				score = 95
			}
		}

		recommendation, note := fallbackVerdict(score)
		out = append(out, Result{
			JobRecord:      job,
			MatchScore:     score,
			Reasons:        fallbackReasons(matched, len(input.Keywords)),
			Notes:          note,
			Recommendation: recommendation,
		})
	}
	return out
}

func fallbackVerdict(score int) (recommendation, note string) {
	switch {
	case score >= 75:
		return "strong", "Strong match for your current skill set."
	case score >= 60:
		return "good", "Good match worth applying to."
	case score >= 45:
		return "potential", "Potential match with some skill gaps to close."
	default:
		return "growth opportunity", "Growth opportunity that would stretch your current skills."
	}
}

func fallbackReasons(matched []string, total int) []string {
	if total == 0 {
		return []string{"Scored without extracted keywords; treat as a baseline estimate."}
	}
	reasons := []string{
		"Matches " + strconv.Itoa(len(matched)) + " of your " + strconv.Itoa(total) + " keywords.",
	}
	if len(matched) > 0 {
		sample := matched
		if len(sample) > 3 {
			sample = sample[:3]
		}
		reasons = append(reasons, "Overlapping skills: "+strings.Join(sample, ", ")+".")
	} else {
		reasons = append(reasons, "No direct keyword overlap with this posting.")
	}
	return reasons
}

func candidateText(input Input) string {
	if len(input.Keywords) == 0 {
		return input.Text
	}
	return input.Text + "\nSkills: " + strings.Join(input.Keywords, ", ")
}

func jobCorpus(job jobs.JobRecord) string {
	parts := []string{job.Title, job.Description}
	parts = append(parts, job.Skills...)
	return strings.ToLower(strings.Join(parts, " "))
}

