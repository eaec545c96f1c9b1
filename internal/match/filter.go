package match

import (
	"sort"
	"strings"
)

// Top-match view thresholds.
const (
	topMatchScore = 70
	topMatchCap   = 5
)

// Filter narrows and orders a result set before it reaches the client.
type Filter struct {
	Query          string
	MinScore       int
	Location       string
	EmploymentType string
	SortBy         string // "match" (default), "date", "company"
}

// Apply filters then sorts a copy of the results. The input slice is not
// mutated.
func Apply(results []Result, f Filter) []Result {
	out := make([]Result, 0, len(results))

	query := strings.ToLower(strings.TrimSpace(f.Query))
	location := strings.ToLower(strings.TrimSpace(f.Location))
	empType := strings.ToLower(strings.TrimSpace(f.EmploymentType))

	for _, r := range results {
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		if f.MinScore > 0 && r.MatchScore < f.MinScore {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(r.Location), location) {
			continue
		}
		if empType != "" && empType != "all" && !strings.EqualFold(r.EmploymentType, empType) {
			continue
		}
		out = append(out, r)
	}

	switch f.SortBy {
	case "date":
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].PostedDate == nil || out[j].PostedDate == nil {
				return false
			}
			return out[i].PostedDate.After(*out[j].PostedDate)
		})
	case "company":
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Company) < strings.ToLower(out[j].Company)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].MatchScore > out[j].MatchScore
		})
	}
	return out
}

// TopMatches returns the strongest results, score 70 or above, capped at 5.
func TopMatches(results []Result) []Result {
	var strong []Result
	for _, r := range results {
		if r.MatchScore >= topMatchScore {
			strong = append(strong, r)
		}
	}
	sort.SliceStable(strong, func(i, j int) bool {
		return strong[i].MatchScore > strong[j].MatchScore
	})
	if len(strong) > topMatchCap {
		strong = strong[:topMatchCap]
	}
	return strong
}

func matchesQuery(r Result, query string) bool {
	if strings.Contains(strings.ToLower(r.Title), query) ||
		strings.Contains(strings.ToLower(r.Company), query) ||
		strings.Contains(strings.ToLower(r.Description), query) {
		return true
	}
	for _, skill := range r.Skills {
		if strings.Contains(strings.ToLower(skill), query) {
			return true
		}
	}
	for _, reason := range r.Reasons {
		if strings.Contains(strings.ToLower(reason), query) {
			return true
		}
	}
	return false
}
