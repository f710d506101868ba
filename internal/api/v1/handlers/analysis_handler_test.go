package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videomind/internal/api/middleware"
	"videomind/internal/api/v1/dto"
	apperrors "videomind/internal/app/errors"
	"videomind/internal/app/model"
)

// stubAnalysisService returns canned values per method.
type stubAnalysisService struct {
	submitResp *dto.AnalyzeResponse
	submitErr  error
	statusResp *dto.StatusResponse
	statusErr  error
	resultResp *dto.ResultResponse
	resultErr  error
	askResp    *dto.AskResponse
	askErr     error
	exportResp *dto.ExportResponse
	exportErr  error
}

func (s *stubAnalysisService) Submit(url string, options *model.Options) (*dto.AnalyzeResponse, error) {
	return s.submitResp, s.submitErr
}

func (s *stubAnalysisService) GetStatus(jobID string) (*dto.StatusResponse, error) {
	return s.statusResp, s.statusErr
}

func (s *stubAnalysisService) GetResult(jobID string) (*dto.ResultResponse, error) {
	return s.resultResp, s.resultErr
}

func (s *stubAnalysisService) Ask(ctx context.Context, jobID, question string) (*dto.AskResponse, error) {
	return s.askResp, s.askErr
}

func (s *stubAnalysisService) Export(path string, limit int) (*dto.ExportResponse, error) {
	return s.exportResp, s.exportErr
}

func newTestRouter(svc *stubAnalysisService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler(logger))

	h := NewAnalysisHandler(svc)
	ask := NewAskHandler(svc)
	r.POST("/api/v1/analyze", h.Analyze)
	r.GET("/api/v1/status/:job_id", h.Status)
	r.GET("/api/v1/result/:job_id", h.Result)
	r.POST("/api/v1/ask", ask.Ask)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAnalyzeAccepted(t *testing.T) {
	svc := &stubAnalysisService{
		submitResp: &dto.AnalyzeResponse{JobID: "job_abc123def456", Status: "pending", Message: "queued"},
	}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodPost, "/api/v1/analyze", `{"url":"https://example.com/v"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp dto.AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "job_abc123def456", resp.JobID)
	assert.Equal(t, "pending", resp.Status)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAnalyzeMissingURL(t *testing.T) {
	r := newTestRouter(&stubAnalysisService{})

	w := doRequest(t, r, http.MethodPost, "/api/v1/analyze", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "url")
}

func TestAnalyzeQueueFull(t *testing.T) {
	svc := &stubAnalysisService{submitErr: apperrors.ErrQueueFull}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodPost, "/api/v1/analyze", `{"url":"https://example.com/v"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStatusNotFound(t *testing.T) {
	svc := &stubAnalysisService{statusErr: apperrors.ErrJobNotFound}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodGet, "/api/v1/status/job_missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusOK(t *testing.T) {
	svc := &stubAnalysisService{
		statusResp: &dto.StatusResponse{
			JobID: "job_abc123def456", Status: "processing", Progress: 30, CurrentStep: "Transcribing audio",
		},
	}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodGet, "/api/v1/status/job_abc123def456", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 30, resp.Progress)
	assert.Equal(t, "Transcribing audio", resp.CurrentStep)
}

func TestResultCompleted(t *testing.T) {
	svc := &stubAnalysisService{
		resultResp: &dto.ResultResponse{
			JobID:  "job_abc123def456",
			Status: "completed",
			Video:  &dto.VideoResult{Title: "Title", Duration: "95", Source: "example.com"},
			Summary: &dto.SummaryResult{
				Short: "short", Detailed: "detailed",
			},
			SubtitlesSRT: "1\n00:00:00,000 --> 00:00:02,500\nhello\n",
		},
	}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodGet, "/api/v1/result/job_abc123def456", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ResultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Video)
	assert.Equal(t, "Title", resp.Video.Title)
	assert.Equal(t, "short", resp.Summary.Short)
}

func TestResultFailedOmitsArtifacts(t *testing.T) {
	svc := &stubAnalysisService{
		resultResp: &dto.ResultResponse{
			JobID:  "job_abc123def456",
			Status: "failed",
			Error:  "Download failed",
		},
	}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodGet, "/api/v1/result/job_abc123def456", "")
	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Download failed")
	assert.NotContains(t, body, "video")
	assert.NotContains(t, body, "transcript")
}

func TestAskRequiresCompletedJob(t *testing.T) {
	svc := &stubAnalysisService{askErr: apperrors.ErrJobNotCompleted}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodPost, "/api/v1/ask", `{"job_id":"job_abc123def456","question":"What is this about?"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAskOK(t *testing.T) {
	svc := &stubAnalysisService{
		askResp: &dto.AskResponse{
			JobID:    "job_abc123def456",
			Question: "What is this about?",
			Answer:   "A tutorial on Go.",
		},
	}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodPost, "/api/v1/ask", `{"job_id":"job_abc123def456","question":"What is this about?"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.AskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "A tutorial on Go.", resp.Answer)
}
