package analyze

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SHIVANSHU-TECH/ApplyAI/internal/extract"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/jobs"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/match"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/metrics"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/server/respond"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/telemetry"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
}

type jsonRequest struct {
	Resume string `json:"resume"`
	Skills string `json:"skills"`
}

func (h *Handler) analyze(c *gin.Context) {
	metrics.IncAnalysisStarted()
	started := time.Now()
	analysisID := uuid.NewString()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	input, ok := h.readInput(c)
	if !ok {
		metrics.IncAnalysisFailed()
		return
	}

	out, err := h.Svc.Analyze(c.Request.Context(), input)
	if err != nil {
		metrics.IncAnalysisFailed()
		var parseErr *extract.FormatParseError
		switch {
		case errors.Is(err, ErrNoInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "no resume or skills provided", nil)
		case errors.As(err, &parseErr):
			respond.Error(c, http.StatusBadRequest, "format_parse_error", err.Error(), nil)
		case errors.Is(err, jobs.ErrNoJobs):
			respond.Error(c, http.StatusNotFound, "no_jobs", "no job data available", nil)
		default:
			telemetry.Error("analysis failed", map[string]any{"analysis_id": analysisID, "error": err.Error()})
			respond.Error(c, http.StatusInternalServerError, "analysis_failed", "failed to analyze resume", nil)
		}
		return
	}

	recommendations := match.Apply(out.Recommendations, filterFromQuery(c))
	if c.Query("view") == "top" {
		recommendations = match.TopMatches(recommendations)
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(started).Milliseconds()))
	telemetry.Info("analysis completed", map[string]any{
		"analysis_id": analysisID,
		"jobs_scored": len(out.Recommendations),
		"returned":    len(recommendations),
	})

	respond.JSON(c, http.StatusOK, gin.H{
		"success":         true,
		"analysisId":      analysisID,
		"extraction":      out.Extraction,
		"recommendations": recommendations,
	})
}

// readInput accepts either a multipart form (resume file + skills +
// resumeText fields) or a JSON body. Replies with a validation error and
// returns false when the request cannot be read.
func (h *Handler) readInput(c *gin.Context) (Input, bool) {
	var input Input

	contentType := c.ContentType()
	if contentType == "multipart/form-data" {
		fileHeader, err := c.FormFile("resume")
		if err != nil && isBodyTooLarge(err) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "resume upload exceeds the 10MB limit", nil)
			return Input{}, false
		}
		if err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read resume file", nil)
				return Input{}, false
			}
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read resume file", nil)
				return Input{}, false
			}
			input.Document = &extract.Document{
				Data:        data,
				FileName:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get("Content-Type"),
			}
		}
		input.Skills = c.PostForm("skills")
		input.ResumeText = c.PostForm("resumeText")
		return input, true
	}

	var req jsonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isBodyTooLarge(err) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "request body exceeds the 10MB limit", nil)
			return Input{}, false
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON input", nil)
		return Input{}, false
	}
	input.ResumeText = req.Resume
	input.Skills = req.Skills
	return input, true
}

// isBodyTooLarge detects a tripped http.MaxBytesReader. The multipart
// parser stringifies the error, so the message check backs up errors.As.
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}

func filterFromQuery(c *gin.Context) match.Filter {
	minScore, _ := strconv.Atoi(c.Query("minScore"))
	return match.Filter{
		Query:          c.Query("q"),
		MinScore:       minScore,
		Location:       c.Query("location"),
		EmploymentType: c.Query("employmentType"),
		SortBy:         c.Query("sortBy"),
	}
}
