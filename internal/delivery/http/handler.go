package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skillmatch/backend/internal/domain"
	"github.com/skillmatch/backend/internal/infrastructure/cache"
	"github.com/skillmatch/backend/internal/logger"
	"github.com/skillmatch/backend/internal/usecase"
)

// Client-facing error messages
const (
	msgNoResumeFile     = "No resume file uploaded"
	msgNoFileSelected   = "No file selected"
	msgJobDescRequired  = "Job description is required"
	msgInvalidFileType  = "Invalid file type. Please upload PDF, DOCX, or TXT files."
	msgNoResumeText     = "Could not extract text from resume"
	msgFileTooLarge     = "File too large"
	msgNoResumesUpload  = "At least one resume file is required"
	msgServiceNotReady  = "Matching service not configured"
	msgInternalError    = "Internal server error"
	msgJobSourceFailure = "Job listings are currently unavailable"
	msgNoJobsFound      = "No job postings found"
)

// Version is reported by the health endpoint
var Version = "dev"

// CacheStats reports cache usage for the health endpoint
type CacheStats interface {
	Stats() cache.Stats
}

// HandlerConfig holds response shaping options
type HandlerConfig struct {
	AdditionalLimit int // additional skills shown in upload responses
	PreviewLength   int // resume characters shown in upload responses
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	service   *usecase.MatchService
	documents domain.TextExtractor
	cache     CacheStats
	config    HandlerConfig
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler. cacheStats may be nil.
func NewHandler(
	service *usecase.MatchService,
	documents domain.TextExtractor,
	cacheStats CacheStats,
	config HandlerConfig,
	log *zap.Logger,
) *Handler {
	if config.AdditionalLimit <= 0 {
		config.AdditionalLimit = 10
	}
	if config.PreviewLength <= 0 {
		config.PreviewLength = 500
	}

	return &Handler{
		service:   service,
		documents: documents,
		cache:     cacheStats,
		config:    config,
		logger:    logger.WithFields(log).Named("http"),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	response := gin.H{
		"status":  "healthy",
		"service": "skillmatch",
		"version": Version,
	}
	if h.service != nil {
		response["skills"] = h.service.Vocabulary().Len()
	}
	if h.cache != nil {
		response["cache"] = h.cache.Stats()
	}
	c.JSON(http.StatusOK, response)
}

// MatchUpload scores an uploaded resume against a job description with basic matching
func (h *Handler) MatchUpload(c *gin.Context) {
	h.matchUpload(c, domain.MatchModeBasic)
}

// MatchUploadAdvanced scores an uploaded resume against a job description with advanced matching
func (h *Handler) MatchUploadAdvanced(c *gin.Context) {
	h.matchUpload(c, domain.MatchModeAdvanced)
}

func (h *Handler) matchUpload(c *gin.Context, mode domain.MatchMode) {
	if !h.ready(c) {
		return
	}

	upload, ok := h.readResumeUpload(c)
	if !ok {
		return
	}

	jobDescription := c.PostForm("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		respondError(c, http.StatusBadRequest, msgJobDescRequired)
		return
	}

	text, ok := h.extractUpload(c, upload)
	if !ok {
		return
	}

	report, err := h.service.MatchDocuments(c.Request.Context(), text, jobDescription, mode)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.newUploadMatchResponse(upload.filename, text, report))
}

// MatchText scores resume text against a job description
func (h *Handler) MatchText(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req matchTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, validationMessage(err))
		return
	}

	report, err := h.service.MatchDocuments(c.Request.Context(), req.ResumeText, req.JobDescription, domain.ParseMatchMode(req.Mode))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, matchTextResponse{
		Success:      true,
		Result:       report.Result,
		ResumeSkills: report.ResumeSkills,
		JobSkills:    report.JobSkills,
	})
}

// RankCandidates ranks many uploaded resumes against one job description
func (h *Handler) RankCandidates(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.handleFormError(c, err, msgNoResumesUpload)
		return
	}

	jobDescription := strings.Join(form.Value["job_description"], "\n")
	if strings.TrimSpace(jobDescription) == "" {
		respondError(c, http.StatusBadRequest, msgJobDescRequired)
		return
	}

	files := form.File["resumes"]
	if len(files) == 0 {
		respondError(c, http.StatusBadRequest, msgNoResumesUpload)
		return
	}

	rejected := make([]string, 0)
	documents := make([]usecase.CandidateDocument, 0, len(files))
	for _, fh := range files {
		name := filepath.Base(fh.Filename)
		if name == "" || name == "." || !h.documents.Allowed(name) {
			rejected = append(rejected, name)
			continue
		}
		data, err := readFileHeader(fh)
		if err != nil {
			h.logger.Warn("failed to read upload",
				zap.String(logger.FieldRequestID, requestID(c)),
				zap.String(logger.FieldFilename, name),
				zap.Error(err))
			documents = append(documents, usecase.CandidateDocument{ID: name})
			continue
		}
		documents = append(documents, usecase.CandidateDocument{
			ID:   name,
			Text: h.documents.Extract(name, data),
		})
	}

	if len(documents) == 0 {
		respondError(c, http.StatusBadRequest, msgInvalidFileType)
		return
	}

	mode := domain.ParseMatchMode(strings.Join(form.Value["mode"], ""))
	ranking, err := h.service.RankCandidates(c.Request.Context(), jobDescription, documents, mode)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rankResponse{
		Success:        true,
		Mode:           mode,
		JobSkills:      ranking.JobSkills,
		Candidates:     ranking.Ranked,
		Unreadable:     ranking.Unreadable,
		Rejected:       rejected,
		TotalSubmitted: len(files),
	})
}

// RecommendJobs ranks job postings for an uploaded resume
func (h *Handler) RecommendJobs(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	upload, ok := h.readResumeUpload(c)
	if !ok {
		return
	}

	text, ok := h.extractUpload(c, upload)
	if !ok {
		return
	}

	recs, err := h.service.RecommendJobs(c.Request.Context(), text, c.PostForm("query"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, recommendResponse{
		Success:      true,
		Filename:     upload.filename,
		Query:        recs.Query,
		ResumeSkills: recs.ResumeSkills,
		Jobs:         recs.Matches,
	})
}

// ListSkills returns the vocabulary grouped by category
func (h *Handler) ListSkills(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	vocab := h.service.Vocabulary()
	c.JSON(http.StatusOK, gin.H{
		"total":      vocab.Len(),
		"categories": vocab.Categories(),
	})
}

// ExtractSkills returns the skills found in submitted text
func (h *Handler) ExtractSkills(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, validationMessage(err))
		return
	}

	skills := h.service.ExtractSkills(req.Text)
	c.JSON(http.StatusOK, gin.H{
		"skills": skills,
		"count":  len(skills),
	})
}

// resumeUpload is a validated single resume file
type resumeUpload struct {
	filename string
	data     []byte
}

// readResumeUpload reads the "resume" multipart file, writing the error response when it fails
func (h *Handler) readResumeUpload(c *gin.Context) (resumeUpload, bool) {
	fh, err := c.FormFile("resume")
	if err != nil {
		// An empty file input arrives as a plain form value
		if errors.Is(err, http.ErrMissingFile) && c.Request.MultipartForm != nil {
			if _, present := c.Request.MultipartForm.Value["resume"]; present {
				respondError(c, http.StatusBadRequest, msgNoFileSelected)
				return resumeUpload{}, false
			}
		}
		h.handleFormError(c, err, msgNoResumeFile)
		return resumeUpload{}, false
	}

	filename := filepath.Base(fh.Filename)
	if filename == "" || filename == "." {
		respondError(c, http.StatusBadRequest, msgNoFileSelected)
		return resumeUpload{}, false
	}

	data, err := readFileHeader(fh)
	if err != nil {
		h.handleFormError(c, err, msgNoResumeFile)
		return resumeUpload{}, false
	}

	return resumeUpload{filename: filename, data: data}, true
}

// extractUpload checks the file type and extracts its text, writing the error response when it fails
func (h *Handler) extractUpload(c *gin.Context, upload resumeUpload) (string, bool) {
	if !h.documents.Allowed(upload.filename) {
		respondError(c, http.StatusBadRequest, msgInvalidFileType)
		return "", false
	}

	text := h.documents.Extract(upload.filename, upload.data)
	if strings.TrimSpace(text) == "" {
		respondError(c, http.StatusBadRequest, msgNoResumeText)
		return "", false
	}

	h.logger.Debug("resume text extracted",
		zap.String(logger.FieldRequestID, requestID(c)),
		zap.String(logger.FieldFilename, upload.filename),
		zap.String("preview", logger.Truncate(text, 80)))

	return text, true
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *Handler) ready(c *gin.Context) bool {
	if h.service == nil || h.documents == nil {
		respondError(c, http.StatusServiceUnavailable, msgServiceNotReady)
		return false
	}
	return true
}

// handleFormError maps multipart parsing failures to responses
func (h *Handler) handleFormError(c *gin.Context, err error, missingMessage string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		respondError(c, http.StatusRequestEntityTooLarge, msgFileTooLarge)
		return
	}
	respondError(c, http.StatusBadRequest, missingMessage)
}

// handleServiceError maps domain errors to HTTP responses
func (h *Handler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyDocument):
		respondError(c, http.StatusBadRequest, msgNoResumeText)
	case errors.Is(err, domain.ErrNoSkillsRecognized):
		respondError(c, http.StatusBadRequest, domain.ErrNoSkillsRecognized.Error())
	case errors.Is(err, domain.ErrInvalidRequest):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoJobsFound):
		respondError(c, http.StatusNotFound, msgNoJobsFound)
	case errors.Is(err, domain.ErrJobSourceFailure):
		h.logError(c, err)
		respondError(c, http.StatusBadGateway, msgJobSourceFailure)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusServiceUnavailable, "Request cancelled")
	default:
		h.logError(c, err)
		respondError(c, http.StatusInternalServerError, msgInternalError)
	}
}

func (h *Handler) logError(c *gin.Context, err error) {
	_ = c.Error(err)
	h.logger.Error("request failed",
		zap.String(logger.FieldRequestID, requestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: message})
}

// newUploadMatchResponse shapes a match report the way the upload endpoints return it
func (h *Handler) newUploadMatchResponse(filename, resumeText string, report *usecase.MatchReport) uploadMatchResponse {
	result := report.Result

	resp := uploadMatchResponse{
		Success:          true,
		Filename:         filename,
		Mode:             result.Mode,
		MatchScore:       result.Score,
		MatchedSkills:    result.MatchedSkills,
		MissingSkills:    result.MissingSkills,
		AdditionalSkills: limit(result.AdditionalSkills, h.config.AdditionalLimit),
		TotalRequired:    result.TotalRequired,
		TotalMatched:     result.TotalMatched,
		ResumePreview:    preview(resumeText, h.config.PreviewLength),
		DebugInfo: debugInfo{
			ResumeSkillsCount:  len(report.ResumeSkills),
			JobSkillsCount:     len(report.JobSkills),
			ResumeSkillsFull:   report.ResumeSkills,
			JobSkillsFull:      report.JobSkills,
			ResumeSkillsSample: limit(report.ResumeSkills, 5),
			JobSkillsSample:    limit(report.JobSkills, 5),
		},
	}

	if result.Mode == domain.MatchModeAdvanced {
		resp.Scores = &scoreBreakdown{
			Exact:    result.ExactScore,
			Fuzzy:    result.FuzzyScore,
			Semantic: result.SemanticScore,
		}
	}

	return resp
}

// preview returns the first n characters of text, with "..." appended when cut
func preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return fmt.Sprintf("%s...", string(runes[:n]))
}

func limit(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
