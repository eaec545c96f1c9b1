// Package keywords turns résumé text into a normalized keyword set.
//
// Two strategies coexist: a dictionary scan used when the text has no
// recognizable structure, and a frequency ranking used when section
// parsing produced structured content. Both produce lowercase, trimmed,
// de-duplicated tokens.
package keywords

import (
	"regexp"
	"sort"
	"strings"

	"github.com/SHIVANSHU-TECH/ApplyAI/internal/sections"
)

// FrequencyLimit bounds the frequency-ranked output.
const FrequencyLimit = 20

// Dictionary is the immutable configuration for dictionary mode. Loaded
// once at startup and injected, so tests can substitute smaller lists.
type Dictionary struct {
	Categories      [][]string
	JobTitles       []string
	Industries      []string
	EducationLevels []string
	StopWords       []string
}

// DefaultDictionary returns the production dictionaries. Category order is
// significant: output preserves category-then-literal order.
func DefaultDictionary() Dictionary {
	return Dictionary{
		Categories: [][]string{
			// programming languages
			{"javascript", "typescript", "python", "java", "golang", "ruby", "php", "c#", "c++", "swift", "kotlin", "rust", "scala"},
			// frameworks
			{"react", "angular", "vue", "nextjs", "nodejs", "express", "django", "flask", "spring", "rails", "laravel", ".net"},
			// databases
			{"sql", "mysql", "postgresql", "mongodb", "redis", "elasticsearch", "dynamodb", "sqlite", "oracle"},
			// cloud and devops
			{"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins", "ci/cd", "linux", "serverless"},
			// productivity tools
			{"git", "jira", "confluence", "figma", "excel", "tableau", "power bi"},
			// soft skills
			{"leadership", "communication", "teamwork", "problem solving", "project management", "agile", "scrum", "mentoring"},
		},
		JobTitles: []string{
			"software engineer", "frontend developer", "backend developer", "full stack developer",
			"data scientist", "data analyst", "devops engineer", "product manager",
			"engineering manager", "qa engineer", "machine learning engineer",
		},
		Industries: []string{
			"fintech", "healthcare", "e-commerce", "education", "logistics", "saas", "gaming",
		},
		EducationLevels: []string{
			"bachelor", "master", "phd", "mba", "bootcamp", "associate degree",
		},
		StopWords: []string{"and", "the", "for", "with", "was", "were", "that", "this", "have", "from"},
	}
}

var tokenRe = regexp.MustCompile(`\W+`)

// Extractor derives keywords from résumé content. Safe for concurrent use.
type Extractor struct {
	dict      Dictionary
	stopWords map[string]struct{}
}

// NewExtractor constructs an Extractor over the given dictionaries.
func NewExtractor(dict Dictionary) *Extractor {
	stop := make(map[string]struct{}, len(dict.StopWords))
	for _, w := range dict.StopWords {
		stop[w] = struct{}{}
	}
	return &Extractor{dict: dict, stopWords: stop}
}

// Extract picks the strategy: frequency mode over section content when
// parsing found anything, dictionary mode over the raw text otherwise.
func (e *Extractor) Extract(text string, secs sections.Sections) []string {
	if secs.HasAny() {
		return e.FromSections(secs)
	}
	return e.FromText(text)
}

// FromText scans the fixed literal dictionaries against the whole text.
// Matching is a case-insensitive substring test; output order is
// category-then-literal order, deduplicated across categories.
func (e *Extractor) FromText(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	var out []string
	add := func(literals []string) {
		for _, lit := range literals {
			if _, dup := seen[lit]; dup {
				continue
			}
			if strings.Contains(lower, lit) {
				seen[lit] = struct{}{}
				out = append(out, lit)
			}
		}
	}
	for _, category := range e.dict.Categories {
		add(category)
	}
	add(e.dict.JobTitles)
	add(e.dict.Industries)
	add(e.dict.EducationLevels)
	return out
}

// FromSections concatenates the parsed section strings into one corpus and
// ranks tokens by frequency, keeping the top FrequencyLimit.
func (e *Extractor) FromSections(secs sections.Sections) []string {
	var parts []string
	parts = append(parts, secs.Skills...)
	for _, exp := range secs.Experience {
		parts = append(parts, exp.Title, exp.Company, exp.Description)
	}
	for _, edu := range secs.Education {
		parts = append(parts, edu.Degree, edu.Institution)
	}
	return e.RankByFrequency(strings.Join(parts, " "))
}

// RankByFrequency tokenizes on non-word boundaries, lowercases, drops
// tokens shorter than 3 characters and stop words, and returns the top
// FrequencyLimit tokens by count. Ties break by first occurrence.
func (e *Extractor) RankByFrequency(corpus string) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, tok := range tokenRe.Split(strings.ToLower(corpus), -1) {
		if len(tok) < 3 {
			continue
		}
		if _, stop := e.stopWords[tok]; stop {
			continue
		}
		if _, ok := firstSeen[tok]; !ok {
			firstSeen[tok] = i
		}
		counts[tok]++
	}

	ranked := make([]string, 0, len(counts))
	for tok := range counts {
		ranked = append(ranked, tok)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return firstSeen[ranked[i]] < firstSeen[ranked[j]]
	})
	if len(ranked) > FrequencyLimit {
		ranked = ranked[:FrequencyLimit]
	}
	return ranked
}

// MergeManual unions manually supplied comma-separated skills into an
// already-extracted keyword set. Manual entries are lowercased and trimmed
// but never re-tokenized.
func MergeManual(extracted []string, manual string) []string {
	out := make([]string, 0, len(extracted))
	seen := make(map[string]struct{}, len(extracted))
	for _, kw := range extracted {
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	for _, part := range strings.Split(manual, ",") {
		kw := strings.ToLower(strings.TrimSpace(part))
		if len(kw) < 2 {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
