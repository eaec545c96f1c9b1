// Package sections locates labeled résumé sections with regex heuristics.
// The label dictionary and skill dictionary are injected so the whole
// strategy can be swapped out without touching keyword extraction or
// match scoring.
package sections

import (
	"regexp"
	"strconv"
	"strings"
)

// Contact holds contact details scanned from the whole text, not just a
// "contact" heading.
type Contact struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	LinkedIn          string `json:"linkedin"`
	YearsOfExperience int    `json:"yearsOfExperience"`
}

// HasContact reports whether at least one direct contact channel was found.
func (c Contact) HasContact() bool {
	return c.Email != "" || c.Phone != ""
}

// Experience is one work-history entry approximated from a labeled span.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// Education is one education entry approximated from a labeled span.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Description string `json:"description"`
}

// Sections is the structured view of a résumé. Absent sections are empty,
// never nil maps or panics.
type Sections struct {
	Contact    Contact      `json:"contact"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Summary    string       `json:"summary"`
}

// HasAny reports whether any labeled section produced content.
func (s Sections) HasAny() bool {
	return len(s.Skills) > 0 || len(s.Experience) > 0 || len(s.Education) > 0 || s.Summary != ""
}

// Config carries the injected dictionaries. Tests substitute smaller ones.
type Config struct {
	// Labels maps a section key to its recognized heading words.
	Labels map[string][]string
	// SkillDictionary is tested against the whole text when no skills
	// heading exists.
	SkillDictionary []string
}

// DefaultConfig returns the production label and skill dictionaries.
func DefaultConfig() Config {
	return Config{
		Labels: map[string][]string{
			"skills":     {"skills", "technical skills", "core competencies"},
			"experience": {"experience", "work experience", "employment history", "work history"},
			"education":  {"education", "academic background", "qualifications"},
			"summary":    {"summary", "objective", "profile", "about me"},
			"contact":    {"contact", "contact information"},
		},
		SkillDictionary: []string{
			"javascript", "typescript", "python", "java", "go", "ruby", "php", "c++", "c#",
			"react", "angular", "vue", "nodejs", "django", "flask", "spring",
			"sql", "mysql", "postgresql", "mongodb", "redis",
			"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "git",
			"leadership", "communication", "teamwork", "project management", "agile", "scrum",
		},
	}
}

var (
	emailRe     = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe     = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinRe  = regexp.MustCompile(`(?i)linkedin\.com/in/[A-Za-z0-9_-]+`)
	yearsExpRe  = regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*(?:of\s*)?experience`)
	yearRangeRe = regexp.MustCompile(`(?i)(19|20)\d{2}\s*[-–—]\s*((19|20)\d{2}|present|current)`)
	degreeRe    = regexp.MustCompile(`(?i)\b(b\.?\s?sc|m\.?\s?sc|b\.?\s?a|m\.?\s?a|b\.?\s?tech|m\.?\s?tech|b\.?\s?e|m\.?\s?e|mba|ph\.?\s?d|bachelor(?:'?s)?|master(?:'?s)?|diploma)\b`)
	skillSplit  = regexp.MustCompile(`[,\n\r;•·▪●*]+`)
)

// Parser is a pure section locator. Safe for concurrent use.
type Parser struct {
	cfg      Config
	headings map[string][]*regexp.Regexp
}

// NewParser constructs a Parser with the given dictionaries.
func NewParser(cfg Config) *Parser {
	if len(cfg.Labels) == 0 {
		cfg = DefaultConfig()
	}
	p := &Parser{cfg: cfg, headings: make(map[string][]*regexp.Regexp)}
	for section, aliases := range cfg.Labels {
		for _, alias := range aliases {
			// Headings must start a line, so "years of experience" inside a
			// paragraph never opens the experience section.
			p.headings[section] = append(p.headings[section],
				regexp.MustCompile(`(?im)^[ \t]*`+regexp.QuoteMeta(alias)+`\b[ \t]*:?`))
		}
	}
	return p
}

// Parse locates the five known sections independently. It never fails;
// a missing label just yields an empty section.
func (p *Parser) Parse(text string) Sections {
	return Sections{
		Contact:    p.parseContact(text),
		Skills:     p.parseSkills(text),
		Experience: p.parseExperience(text),
		Education:  p.parseEducation(text),
		Summary:    p.parseSummary(text),
	}
}

// span returns the text between the end of the named section's heading and
// the next recognized heading of any other section, or "" when the heading
// is absent.
func (p *Parser) span(text, section string) string {
	headStart, start := -1, -1
	for _, re := range p.headings[section] {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if headStart < 0 || loc[0] < headStart {
			headStart, start = loc[0], loc[1]
		}
	}
	if start < 0 {
		return ""
	}

	bound := len(text)
	for other, res := range p.headings {
		if other == section {
			continue
		}
		for _, re := range res {
			if loc := re.FindStringIndex(text[start:]); loc != nil && start+loc[0] < bound {
				bound = start + loc[0]
			}
		}
	}
	return strings.Trim(text[start:bound], " \t\n\r:•-")
}

func (p *Parser) parseContact(text string) Contact {
	contact := Contact{
		Email:    emailRe.FindString(text),
		Phone:    strings.TrimSpace(phoneRe.FindString(text)),
		LinkedIn: linkedinRe.FindString(text),
	}

	if m := yearsExpRe.FindStringSubmatch(text); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			contact.YearsOfExperience = years
		}
	}

	// Name heuristic: among the first 5 non-empty lines, the first one that
	// is neither an email nor a phone number and has a plausible length.
	var seen int
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen++
		if seen > 5 {
			break
		}
		if emailRe.MatchString(line) || phoneRe.MatchString(line) {
			continue
		}
		if len(line) >= 3 && len(line) < 50 {
			contact.Name = line
			break
		}
	}
	return contact
}

func (p *Parser) parseSkills(text string) []string {
	if span := p.span(text, "skills"); span != "" {
		var out []string
		for _, part := range skillSplit.Split(span, -1) {
			part = strings.Trim(part, " \t-–")
			if len(part) > 1 && len(part) < 50 {
				out = append(out, part)
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	// No usable skills heading: test the fixed dictionary against the whole
	// text with word boundaries, escaping regex metacharacters in the skill
	// literal.
	var out []string
	for _, skill := range p.cfg.SkillDictionary {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(skill) + `\b`)
		if err != nil {
			continue
		}
		if re.MatchString(text) {
			out = append(out, skill)
		}
	}
	return out
}

func (p *Parser) parseExperience(text string) []Experience {
	span := p.span(text, "experience")
	if span == "" {
		return nil
	}

	var out []Experience
	for _, chunk := range splitOnYearRanges(span) {
		chunk = strings.TrimSpace(chunk)
		if len(chunk) <= 10 {
			continue
		}
		title, rest := firstLine(chunk)
		entry := Experience{Title: title, Description: rest}
		if at := strings.Index(strings.ToLower(title), " at "); at >= 0 {
			entry.Title = strings.TrimSpace(title[:at])
			entry.Company = strings.TrimSpace(title[at+4:])
		}
		if entry.Title == "" && entry.Description == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func (p *Parser) parseEducation(text string) []Education {
	span := p.span(text, "education")
	if span == "" {
		return nil
	}

	var out []Education
	for _, chunk := range splitOnYearRanges(span) {
		chunk = strings.TrimSpace(chunk)
		if len(chunk) <= 10 {
			continue
		}
		institution, rest := firstLine(chunk)
		entry := Education{
			Institution: institution,
			Degree:      strings.TrimSpace(degreeRe.FindString(chunk)),
			Description: rest,
		}
		if entry.Institution == "" && entry.Description == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func (p *Parser) parseSummary(text string) string {
	if span := p.span(text, "summary"); span != "" {
		return span
	}

	// Fallback: the first paragraph long enough to be prose that is not
	// contact boilerplate.
	for _, para := range regexp.MustCompile(`\n\s*\n`).Split(text, -1) {
		para = strings.TrimSpace(para)
		if len(para) <= 50 {
			continue
		}
		lowerPara := strings.ToLower(para)
		if strings.Contains(lowerPara, "email") || strings.Contains(lowerPara, "phone") || strings.Contains(lowerPara, "address") {
			continue
		}
		return para
	}
	return ""
}

// splitOnYearRanges cuts a span into per-entry chunks using year ranges
// like "2019 - 2022" or "2020-present" as boundaries.
func splitOnYearRanges(span string) []string {
	return yearRangeRe.Split(span, -1)
}

func firstLine(chunk string) (first, rest string) {
	var remainder []string
	for _, line := range strings.Split(chunk, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if first == "" {
			first = line
			continue
		}
		remainder = append(remainder, line)
	}
	return first, strings.Join(remainder, "\n")
}
