package match

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/SHIVANSHU-TECH/ApplyAI/internal/jobs"
)

// defaultRemoteScore stands in when the remote reports a non-numeric score.
const defaultRemoteScore = 50

// remoteEntry is one element of the remote scorer's JSON array. Every
// field is raw because the payload is untrusted: scores arrive as numbers
// or "85%" strings, reasons are sometimes a bare string, and two id/score
// key spellings are in circulation.
type remoteEntry struct {
	JobID           string          `json:"jobId"`
	ID              string          `json:"id"`
	MatchScore      json.RawMessage `json:"matchScore"`
	MatchPercentage json.RawMessage `json:"matchPercentage"`
	Reasons         json.RawMessage `json:"reasons"`
	WhyMatch        json.RawMessage `json:"whyMatch"`
	Notes           json.RawMessage `json:"notes"`
	Recommendation  string          `json:"recommendation"`
}

// mergeRemote tolerantly parses the raw response text and joins valid
// entries onto the input job list. Entries whose id matches no input job
// are dropped; anything unparseable yields an empty slice so the caller
// falls back.
func mergeRemote(raw string, list []jobs.JobRecord) []Result {
	elements, ok := extractArray(raw)
	if !ok {
		return nil
	}

	byID := make(map[string]jobs.JobRecord, len(list))
	for _, job := range list {
		byID[job.ID] = job
	}

	var out []Result
	for _, element := range elements {
		var entry remoteEntry
		if err := json.Unmarshal(element, &entry); err != nil {
			continue
		}
		id := entry.JobID
		if id == "" {
			id = entry.ID
		}
		job, known := byID[id]
		if !known {
			continue
		}

		recommendation := entry.Recommendation
		if recommendation == "" {
			recommendation = "moderate"
		}

		out = append(out, Result{
			JobRecord:      job,
			MatchScore:     parseScore(entry.MatchScore, entry.MatchPercentage),
			Reasons:        parseReasons(entry.Reasons, entry.WhyMatch),
			Notes:          parseNotes(entry.Notes),
			Recommendation: recommendation,
		})
	}
	return out
}

// extractArray strips code fences and surrounding prose, then parses the
// outermost [...] span into raw elements.
func extractArray(raw string) ([]json.RawMessage, bool) {
	clean := strings.TrimSpace(raw)
	clean = strings.ReplaceAll(clean, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")

	start := strings.Index(clean, "[")
	end := strings.LastIndex(clean, "]")
	if start < 0 || end <= start {
		return nil, false
	}
	clean = clean[start : end+1]

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(clean), &elements); err != nil {
		return nil, false
	}
	return elements, true
}

// parseScore accepts a JSON number or a string like "85%" under either
// score key, defaults non-numeric values, and clamps into [0,100].
func parseScore(primary, alternate json.RawMessage) int {
	raw := primary
	if len(raw) == 0 || string(raw) == "null" {
		raw = alternate
	}
	if len(raw) == 0 || string(raw) == "null" {
		return defaultRemoteScore
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return clampScore(int(math.Round(num)))
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		str = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(str), "%"))
		if n, err := strconv.Atoi(str); err == nil {
			return clampScore(n)
		}
	}
	return defaultRemoteScore
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// parseReasons accepts an array of strings or a single bare string under
// either key; anything else becomes an empty list.
func parseReasons(primary, alternate json.RawMessage) []string {
	for _, raw := range []json.RawMessage{primary, alternate} {
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			return list
		}
		var one string
		if err := json.Unmarshal(raw, &one); err == nil && one != "" {
			return []string{one}
		}
	}
	return []string{}
}

func parseNotes(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}
