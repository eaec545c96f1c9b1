package analyze

import (
	"context"

	"github.com/SHIVANSHU-TECH/ApplyAI/internal/extract"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/jobs"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/keywords"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/match"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/sections"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/metrics"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/telemetry"
)

// Input is one analysis request. Document, ResumeText, and Skills are all
// optional individually; at least one of document/text/skills must be set.
type Input struct {
	Document   *extract.Document
	ResumeText string
	Skills     string
}

// Service orchestrates the extraction and matching pipeline.
type Service struct {
	Parser   *sections.Parser
	Keywords *keywords.Extractor
	Jobs     *jobs.Service
	Scorer   *match.Scorer
}

// Analyze runs the full pipeline: extract text, parse sections, derive
// keywords, fetch jobs, score. Scoring degrades internally; extraction
// and empty-input failures surface to the caller.
func (s *Service) Analyze(ctx context.Context, input Input) (Output, error) {
	if input.Document == nil && input.ResumeText == "" && input.Skills == "" {
		return Output{}, ErrNoInput
	}

	extraction, err := s.extractInput(input)
	if err != nil {
		return Output{}, err
	}

	list, err := s.Jobs.List(ctx)
	if err != nil {
		return Output{}, err
	}

	results := s.Scorer.Score(ctx, match.Input{
		Text:     extraction.RawText,
		Keywords: extraction.Keywords,
	}, list)

	return Output{Extraction: extraction, Recommendations: results}, nil
}

func (s *Service) extractInput(input Input) (ExtractionResult, error) {
	text := input.ResumeText
	lowConfidence := false

	if input.Document != nil {
		metrics.IncExtraction()
		result, err := extract.Extract(*input.Document)
		if err != nil {
			metrics.IncExtractionFailed()
			return ExtractionResult{}, err
		}
		text = result.Text
		lowConfidence = result.LowConfidence
	}

	var (
		secs      sections.Sections
		secsFound *sections.Sections
		kws       []string
	)
	if text != "" {
		secs = s.Parser.Parse(text)
		if secs.HasAny() {
			secsFound = &secs
		}
		kws = s.Keywords.Extract(text, secs)
	}
	kws = keywords.MergeManual(kws, input.Skills)

	telemetry.Info("resume extracted", map[string]any{
		"text_length":    len(text),
		"keywords":       len(kws),
		"has_sections":   secsFound != nil,
		"has_contact":    secs.Contact.HasContact(),
		"low_confidence": lowConfidence,
	})

	return ExtractionResult{
		RawText:       text,
		TextLength:    len(text),
		Keywords:      kws,
		Sections:      secsFound,
		LowConfidence: lowConfidence,
	}, nil
}
