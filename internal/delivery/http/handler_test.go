package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillmatch/backend/config"
	"github.com/skillmatch/backend/internal/infrastructure/cache"
	"github.com/skillmatch/backend/internal/infrastructure/document"
	"github.com/skillmatch/backend/internal/infrastructure/jobsource"
	"github.com/skillmatch/backend/internal/usecase"
	"github.com/skillmatch/backend/internal/vocabulary"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	if err := RegisterValidators(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
			MaxUploadBytes: 1 << 20,
		},
		Matching:  config.MatchingConfig{TopK: 10, Workers: 2, AdditionalLimit: 10, PreviewLength: 500},
		Cache:     config.CacheConfig{Type: "memory", TTL: time.Hour},
		RateLimit: config.RateLimitConfig{PerIP: 1000},
	}
}

// setupTestRouter creates a router backed by the real service, the demo job source and a memory cache
func setupTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()

	memCache := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = memCache.Close() })

	service := usecase.NewMatchService(
		vocabulary.New(),
		jobsource.NewFallbackSource(nil, nil),
		memCache,
		usecase.MatchServiceConfig{TopK: cfg.Matching.TopK, Workers: cfg.Matching.Workers, JobCacheTTL: cfg.Cache.TTL},
		nil,
	)
	handler := NewHandler(service, document.NewExtractor(nil), memCache, HandlerConfig{
		AdditionalLimit: cfg.Matching.AdditionalLimit,
		PreviewLength:   cfg.Matching.PreviewLength,
	}, nil)

	return SetupRouter(cfg, handler, nil)
}

type testFile struct {
	field    string
	filename string
	content  string
}

func newMultipartRequest(t *testing.T, path string, fields map[string]string, files ...testFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func newJSONRequest(t *testing.T, path string, payload interface{}) *http.Request {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "body: %s", w.Body.String())
	return response
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter(t, testConfig())

	w := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "skillmatch", response["service"])
	assert.Equal(t, float64(vocabulary.New().Len()), response["skills"])
	assert.Contains(t, response, "cache")
	assert.Contains(t, response, "version")
}

func TestMatchUploadEndpoint(t *testing.T) {
	router := setupTestRouter(t, testConfig())
	resume := testFile{field: "resume", filename: "resume.txt", content: "Jane Doe\nPython and Docker expert"}
	job := map[string]string{"job_description": "Need Python, AWS and Docker"}

	t.Run("scores an uploaded resume", func(t *testing.T) {
		w := serve(router, newMultipartRequest(t, "/api/v1/match", job, resume))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		response := decodeBody(t, w)
		assert.Equal(t, true, response["success"])
		assert.Equal(t, "resume.txt", response["filename"])
		assert.Equal(t, "basic", response["mode"])
		assert.Equal(t, 66.67, response["match_score"])
		assert.Equal(t, []interface{}{"docker", "python"}, response["matched_skills"])
		assert.Equal(t, []interface{}{"aws"}, response["missing_skills"])
		assert.Equal(t, float64(3), response["total_required"])
		assert.Equal(t, float64(2), response["total_matched"])
		assert.Equal(t, "Jane Doe\nPython and Docker expert", response["resume_preview"])
		assert.NotContains(t, response, "scores")

		debug, ok := response["debug_info"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(2), debug["resume_skills_count"])
		assert.Equal(t, float64(3), debug["job_skills_count"])
		assert.Equal(t, []interface{}{"aws", "docker", "python"}, debug["job_skills_full"])
	})

	t.Run("advanced mode includes score breakdown", func(t *testing.T) {
		w := serve(router, newMultipartRequest(t, "/api/v1/match/advanced", job, resume))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		response := decodeBody(t, w)
		assert.Equal(t, "advanced", response["mode"])
		scores, ok := response["scores"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, 66.67, scores["exact"])
	})

	t.Run("long resumes are previewed", func(t *testing.T) {
		long := testFile{field: "resume", filename: "long.txt", content: "python " + strings.Repeat("x", 600)}
		w := serve(router, newMultipartRequest(t, "/api/v1/match", job, long))
		require.Equal(t, http.StatusOK, w.Code)

		preview, _ := decodeBody(t, w)["resume_preview"].(string)
		assert.Len(t, preview, 503)
		assert.True(t, strings.HasSuffix(preview, "..."))
	})

	t.Run("additional skills are limited", func(t *testing.T) {
		many := testFile{field: "resume", filename: "many.txt", content: "python java rust ruby php swift kotlin scala perl dart julia haskell"}
		w := serve(router, newMultipartRequest(t, "/api/v1/match", map[string]string{"job_description": "python"}, many))
		require.Equal(t, http.StatusOK, w.Code)

		response := decodeBody(t, w)
		assert.Len(t, response["additional_skills"], 10)
		debug := response["debug_info"].(map[string]interface{})
		assert.Len(t, debug["resume_skills_full"], 12)
		assert.Len(t, debug["resume_skills_sample"], 5)
	})

	errorCases := []struct {
		name    string
		fields  map[string]string
		files   []testFile
		status  int
		message string
	}{
		{
			name:    "missing file",
			fields:  job,
			status:  http.StatusBadRequest,
			message: "No resume file uploaded",
		},
		{
			name:    "empty filename",
			fields:  job,
			files:   []testFile{{field: "resume", filename: "", content: ""}},
			status:  http.StatusBadRequest,
			message: "No file selected",
		},
		{
			name:    "blank job description",
			fields:  map[string]string{"job_description": "   "},
			files:   []testFile{resume},
			status:  http.StatusBadRequest,
			message: "Job description is required",
		},
		{
			name:    "invalid file type",
			fields:  job,
			files:   []testFile{{field: "resume", filename: "resume.exe", content: "python"}},
			status:  http.StatusBadRequest,
			message: "Invalid file type. Please upload PDF, DOCX, or TXT files.",
		},
		{
			name:    "no extractable text",
			fields:  job,
			files:   []testFile{{field: "resume", filename: "resume.txt", content: "   "}},
			status:  http.StatusBadRequest,
			message: "Could not extract text from resume",
		},
		{
			name:    "job description without skills",
			fields:  map[string]string{"job_description": "We want a friendly person"},
			files:   []testFile{resume},
			status:  http.StatusBadRequest,
			message: "no technical skills recognized in input",
		},
	}

	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, newMultipartRequest(t, "/api/v1/match", tt.fields, tt.files...))
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decodeBody(t, w)["error"])
		})
	}

	t.Run("non-multipart body", func(t *testing.T) {
		w := serve(router, newJSONRequest(t, "/api/v1/match", map[string]string{"job_description": "go"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No resume file uploaded", decodeBody(t, w)["error"])
	})
}

func TestMatchUploadEndpoint_FileTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Server.MaxUploadBytes = 1024
	router := setupTestRouter(t, cfg)

	big := testFile{field: "resume", filename: "big.txt", content: strings.Repeat("python ", 1000)}
	w := serve(router, newMultipartRequest(t, "/api/v1/match", map[string]string{"job_description": "python"}, big))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "File too large", decodeBody(t, w)["error"])
}

func TestMatchTextEndpoint(t *testing.T) {
	router := setupTestRouter(t, testConfig())

	t.Run("advanced match from text", func(t *testing.T) {
		w := serve(router, newJSONRequest(t, "/api/v1/match/text", map[string]string{
			"resume_text":     "Python and Docker expert",
			"job_description": "python docker",
			"mode":            "advanced",
		}))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		response := decodeBody(t, w)
		result := response["result"].(map[string]interface{})
		assert.Equal(t, "advanced", result["mode"])
		assert.Equal(t, 70.0, result["score"])
		assert.Equal(t, []interface{}{"docker", "python"}, response["resume_skills"])
	})

	errorCases := []struct {
		name    string
		payload map[string]string
		message string
	}{
		{"missing resume text", map[string]string{"job_description": "go"}, "resume_text is required"},
		{"blank job description", map[string]string{"resume_text": "go", "job_description": " "}, "job_description is required"},
		{"unknown mode", map[string]string{"resume_text": "go", "job_description": "go", "mode": "magic"}, "mode must be one of: basic advanced"},
	}

	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, newJSONRequest(t, "/api/v1/match/text", tt.payload))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decodeBody(t, w)["error"])
		})
	}

	t.Run("malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/match/text", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		w := serve(router, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decodeBody(t, w)["error"])
	})
}

func TestRankCandidatesEndpoint(t *testing.T) {
	router := setupTestRouter(t, testConfig())
	job := map[string]string{"job_description": "python docker aws"}

	t.Run("ranks resumes and reports rejects", func(t *testing.T) {
		w := serve(router, newMultipartRequest(t, "/api/v1/rank/candidates", job,
			testFile{field: "resumes", filename: "b.txt", content: "python"},
			testFile{field: "resumes", filename: "a.txt", content: "Jane Doe\npython docker aws"},
			testFile{field: "resumes", filename: "empty.txt", content: " "},
			testFile{field: "resumes", filename: "bad.exe", content: "python"},
		))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		response := decodeBody(t, w)
		candidates := response["candidates"].([]interface{})
		require.Len(t, candidates, 2)

		first := candidates[0].(map[string]interface{})
		assert.Equal(t, "a.txt", first["id"])
		assert.Equal(t, "Jane Doe", first["label"])
		assert.Equal(t, []interface{}{"empty.txt"}, response["unreadable"])
		assert.Equal(t, []interface{}{"bad.exe"}, response["rejected"])
		assert.Equal(t, float64(4), response["total_submitted"])
	})

	t.Run("requires resumes", func(t *testing.T) {
		w := serve(router, newMultipartRequest(t, "/api/v1/rank/candidates", job))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "At least one resume file is required", decodeBody(t, w)["error"])
	})

	t.Run("requires job description", func(t *testing.T) {
		w := serve(router, newMultipartRequest(t, "/api/v1/rank/candidates", nil,
			testFile{field: "resumes", filename: "a.txt", content: "python"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Job description is required", decodeBody(t, w)["error"])
	})

	t.Run("only rejected files", func(t *testing.T) {
		w := serve(router, newMultipartRequest(t, "/api/v1/rank/candidates", job,
			testFile{field: "resumes", filename: "a.exe", content: "python"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid file type. Please upload PDF, DOCX, or TXT files.", decodeBody(t, w)["error"])
	})
}

func TestRecommendJobsEndpoint(t *testing.T) {
	router := setupTestRouter(t, testConfig())
	resume := testFile{field: "resume", filename: "resume.txt", content: "Go, Kubernetes, Docker, Terraform and AWS"}

	w := serve(router, newMultipartRequest(t, "/api/v1/jobs/recommend", nil, resume))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	response := decodeBody(t, w)
	assert.Equal(t, "kubernetes terraform docker", response["query"])
	jobs := response["jobs"].([]interface{})
	require.NotEmpty(t, jobs)
	first := jobs[0].(map[string]interface{})["job"].(map[string]interface{})
	assert.Equal(t, "demo", first["source"])

	t.Run("demo jobs are not cached", func(t *testing.T) {
		w := serve(router, newMultipartRequest(t, "/api/v1/jobs/recommend", nil, resume))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		jobs := decodeBody(t, w)["jobs"].([]interface{})
		require.NotEmpty(t, jobs)
		first := jobs[0].(map[string]interface{})["job"].(map[string]interface{})
		assert.Equal(t, "demo", first["source"])
	})

	t.Run("explicit query", func(t *testing.T) {
		w := serve(router, newMultipartRequest(t, "/api/v1/jobs/recommend", map[string]string{"query": "Senior Data Scientist"}, resume))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "data scientist", decodeBody(t, w)["query"])
	})

	t.Run("missing resume", func(t *testing.T) {
		w := serve(router, newMultipartRequest(t, "/api/v1/jobs/recommend", map[string]string{"query": "go"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSkillEndpoints(t *testing.T) {
	router := setupTestRouter(t, testConfig())

	t.Run("lists vocabulary by category", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/skills", nil))
		require.Equal(t, http.StatusOK, w.Code)

		response := decodeBody(t, w)
		assert.Equal(t, float64(vocabulary.New().Len()), response["total"])
		assert.Len(t, response["categories"], len(vocabulary.New().Categories()))
	})

	t.Run("extracts skills from text", func(t *testing.T) {
		w := serve(router, newJSONRequest(t, "/api/v1/skills/extract", map[string]string{"text": "Go and React"}))
		require.Equal(t, http.StatusOK, w.Code)

		response := decodeBody(t, w)
		assert.Equal(t, []interface{}{"go", "react"}, response["skills"])
		assert.Equal(t, float64(2), response["count"])
	})

	t.Run("blank text", func(t *testing.T) {
		w := serve(router, newJSONRequest(t, "/api/v1/skills/extract", map[string]string{"text": "  "}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "text is required", decodeBody(t, w)["error"])
	})
}

func TestHandlerWithoutService(t *testing.T) {
	router := SetupRouter(testConfig(), NewHandler(nil, nil, nil, HandlerConfig{}, nil), nil)

	w := serve(router, newJSONRequest(t, "/api/v1/skills/extract", map[string]string{"text": "go"}))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	router := setupTestRouter(t, testConfig())

	t.Run("generated when absent", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
		_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("valid incoming ID is kept", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, id)
		w := serve(router, req)
		assert.Equal(t, id, w.Header().Get(RequestIDHeader))
	})

	t.Run("invalid incoming ID is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "not-a-uuid")
		w := serve(router, req)
		assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
	})
}

func TestAPIVersioning(t *testing.T) {
	router := setupTestRouter(t, testConfig())

	w := serve(router, httptest.NewRequest(http.MethodPost, "/api/v2/match", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/upload", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short", 10))
	assert.Equal(t, "abcde...", preview("abcdefgh", 5))
	assert.Equal(t, "héllo...", preview("héllo wörld", 5))
}
