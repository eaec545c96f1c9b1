// Package llm defines the remote scoring boundary. Providers return raw
// response text; defensive parsing of that text belongs to the match
// package, so a misbehaving provider can never crash a request.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/SHIVANSHU-TECH/ApplyAI/internal/jobs"
)

// Prompt budget. Candidate text and job count are truncated before the
// prompt is built so a huge upload cannot blow the request payload.
const (
	MaxCandidateChars = 8000
	MaxPromptJobs     = 10
)

// ErrUnavailable reports that the remote scorer could not produce usable
// content (timeout, transport failure, safety block, empty response).
// Callers recover via the local fallback scorer.
var ErrUnavailable = errors.New("remote scorer unavailable")

// Scorer issues one bounded scoring call against a remote model.
type Scorer interface {
	ScoreJobs(ctx context.Context, candidateText string, list []jobs.JobRecord) (string, error)
}

// Disabled is the Scorer used when no provider is configured. Every call
// reports ErrUnavailable so analysis always takes the local path.
type Disabled struct{}

func (Disabled) ScoreJobs(ctx context.Context, candidateText string, list []jobs.JobRecord) (string, error) {
	return "", ErrUnavailable
}

// BuildPrompt renders the scoring prompt with candidate text and job list
// truncated to the prompt budget.
func BuildPrompt(candidateText string, list []jobs.JobRecord) (string, error) {
	if len(candidateText) > MaxCandidateChars {
		cut := MaxCandidateChars
		// Back off to a rune boundary so the cut never leaves a partial
		// UTF-8 sequence in the prompt.
		for cut > 0 && !utf8.RuneStart(candidateText[cut]) {
			cut--
		}
		candidateText = candidateText[:cut]
	}
	if len(list) > MaxPromptJobs {
		list = list[:MaxPromptJobs]
	}
	jobsJSON, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`You are an expert career advisor analyzing job matches for a candidate.
The candidate's resume and skills are:
%s

Here are available job listings in JSON format:
%s

Analyze these jobs and return:
1. Match score (0-100%%) based on skills, experience, and requirements
2. 3 key reasons why it's a good match
3. Any important notes about the match

Return your analysis as a JSON array with objects containing:
- jobId: The original job ID string exactly as provided (EXTREMELY IMPORTANT - must match the id field from jobs)
- matchScore: Percentage match (just the number, no %% sign)
- reasons: Array of 3 strings explaining why this is a good match
- notes: String or null
- recommendation: "strong", "moderate", or "weak"

Format your response to be directly parseable by JSON.parse().
Only return the JSON array, no other text or markdown formatting.

CRITICAL: Make sure each jobId exactly matches one of the job IDs from the provided listings.`,
		candidateText, jobsJSON), nil
}
