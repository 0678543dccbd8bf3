package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpAdapter "smartnotes/internal/notes/adapters/http"
	"smartnotes/internal/notes/app"
	"smartnotes/internal/notes/domain/entities"
	"smartnotes/pkg/logger"
)

type MockNoteUseCase struct {
	mock.Mock
}

func (m *MockNoteUseCase) Summarize(ctx context.Context, text string) (*entities.Summary, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Summary), args.Error(1)
}

func (m *MockNoteUseCase) Save(ctx context.Context, originalText, summary string, keywords []string) (*entities.Note, error) {
	args := m.Called(ctx, originalText, summary, keywords)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *MockNoteUseCase) ListHistory(ctx context.Context) ([]*entities.Note, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newTestApp(t *testing.T, uc *MockNoteUseCase, health *MockHealthChecker) *fiber.App {
	t.Helper()
	fiberApp := httpAdapter.NewApp(5*time.Second, 5*time.Second, 1<<20)
	httpAdapter.SetupRouter(fiberApp, httpAdapter.RouterConfig{CORSOrigins: []string{"*"}}, uc, health)
	return fiberApp
}

func doRequest(t *testing.T, fiberApp *fiber.App, method, path, body string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := fiberApp.Test(req)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, string(data)
}

func TestRoot(t *testing.T) {
	fiberApp := newTestApp(t, new(MockNoteUseCase), new(MockHealthChecker))

	resp, body := doRequest(t, fiberApp, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, httpAdapter.MsgRunning, body)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		setup        func(uc *MockNoteUseCase)
		expectedCode int
		expectedBody string
	}{
		{
			name: "success",
			body: `{"text":"Photosynthesis converts light. Plants need water."}`,
			setup: func(uc *MockNoteUseCase) {
				uc.On("Summarize", mock.Anything, "Photosynthesis converts light. Plants need water.").
					Return(&entities.Summary{Summary: "Photosynthesis converts light.", Keywords: []string{"photosynthesis"}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"summary":"Photosynthesis converts light.","keywords":["photosynthesis"]}`,
		},
		{
			name: "missing text",
			body: `{}`,
			setup: func(uc *MockNoteUseCase) {
				uc.On("Summarize", mock.Anything, "").Return(nil, app.ErrInvalidInput)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"No text provided"}`,
		},
		{
			name: "empty body",
			body: "",
			setup: func(uc *MockNoteUseCase) {
				uc.On("Summarize", mock.Anything, "").Return(nil, app.ErrInvalidInput)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"No text provided"}`,
		},
		{
			name: "analysis failure",
			body: `{"text":"hello"}`,
			setup: func(uc *MockNoteUseCase) {
				uc.On("Summarize", mock.Anything, "hello").
					Return(nil, fmt.Errorf("%w: %w", app.ErrAnalysisFailure, errors.New("bad output")))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Error processing text"}`,
		},
		{
			name:         "malformed json",
			body:         `{"text":`,
			setup:        func(_ *MockNoteUseCase) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockNoteUseCase)
			tt.setup(uc)
			fiberApp := newTestApp(t, uc, new(MockHealthChecker))

			resp, body := doRequest(t, fiberApp, http.MethodPost, "/api/summarize", tt.body)

			assert.Equal(t, tt.expectedCode, resp.StatusCode)
			assert.JSONEq(t, tt.expectedBody, body)
			uc.AssertExpectations(t)
		})
	}
}

func TestSave(t *testing.T) {
	createdAt := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		uc := new(MockNoteUseCase)
		uc.On("Save", mock.Anything, "original", "short", []string{"keyword"}).Return(&entities.Note{
			ID:            "note-1",
			OriginalText:  "original",
			Summary:       "short",
			Keywords:      []string{"keyword"},
			CreatedAt:     createdAt,
			SchemaVersion: 1,
		}, nil)
		fiberApp := newTestApp(t, uc, new(MockHealthChecker))

		resp, body := doRequest(t, fiberApp, http.MethodPost, "/api/save",
			`{"originalText":"original","summary":"short","keywords":["keyword"]}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{
			"message": "Note saved successfully!",
			"note": {
				"_id": "note-1",
				"id": "note-1",
				"originalText": "original",
				"summary": "short",
				"keywords": ["keyword"],
				"createdAt": "2025-05-01T12:00:00Z",
				"schemaVersion": 1
			}
		}`, body)
	})

	t.Run("store failure", func(t *testing.T) {
		uc := new(MockNoteUseCase)
		uc.On("Save", mock.Anything, "", "", []string(nil)).Return(nil, app.ErrPersistenceFailure)
		fiberApp := newTestApp(t, uc, new(MockHealthChecker))

		resp, body := doRequest(t, fiberApp, http.MethodPost, "/api/save", `{}`)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.JSONEq(t, `{"error":"Failed to save note"}`, body)
	})
}

func TestHistory(t *testing.T) {
	t.Run("newest first", func(t *testing.T) {
		uc := new(MockNoteUseCase)
		uc.On("ListHistory", mock.Anything).Return([]*entities.Note{
			{ID: "b", OriginalText: "second", CreatedAt: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)},
			{ID: "a", OriginalText: "first", Keywords: []string{"k"}, CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		}, nil)
		fiberApp := newTestApp(t, uc, new(MockHealthChecker))

		resp, body := doRequest(t, fiberApp, http.MethodGet, "/api/history", "")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var notes []map[string]any
		require.NoError(t, json.Unmarshal([]byte(body), &notes))
		require.Len(t, notes, 2)
		assert.Equal(t, "b", notes[0]["_id"])
		assert.Equal(t, "a", notes[1]["id"])
		assert.Equal(t, []any{}, notes[0]["keywords"])
	})

	t.Run("empty", func(t *testing.T) {
		uc := new(MockNoteUseCase)
		uc.On("ListHistory", mock.Anything).Return([]*entities.Note{}, nil)
		fiberApp := newTestApp(t, uc, new(MockHealthChecker))

		resp, body := doRequest(t, fiberApp, http.MethodGet, "/api/history", "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `[]`, body)
	})

	t.Run("store failure", func(t *testing.T) {
		uc := new(MockNoteUseCase)
		uc.On("ListHistory", mock.Anything).Return(nil, app.ErrPersistenceFailure)
		fiberApp := newTestApp(t, uc, new(MockHealthChecker))

		resp, body := doRequest(t, fiberApp, http.MethodGet, "/api/history", "")

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.JSONEq(t, `{"error":"Failed to fetch history"}`, body)
	})
}

func TestHealthz(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		health := new(MockHealthChecker)
		health.On("Ping", mock.Anything).Return(nil)
		fiberApp := newTestApp(t, new(MockNoteUseCase), health)

		resp, body := doRequest(t, fiberApp, http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"status":"ok"}`, body)
	})

	t.Run("store down", func(t *testing.T) {
		health := new(MockHealthChecker)
		health.On("Ping", mock.Anything).Return(errors.New("connection refused"))
		fiberApp := newTestApp(t, new(MockNoteUseCase), health)

		resp, body := doRequest(t, fiberApp, http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.JSONEq(t, `{"status":"unavailable"}`, body)
	})
}

func TestNotFound(t *testing.T) {
	fiberApp := newTestApp(t, new(MockNoteUseCase), new(MockHealthChecker))

	resp, body := doRequest(t, fiberApp, http.MethodGet, "/api/unknown", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Route not found"}`, body)
}

func TestRequestID(t *testing.T) {
	fiberApp := newTestApp(t, new(MockNoteUseCase), new(MockHealthChecker))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(logger.HeaderRequestID, "req-123")
	resp, err := fiberApp.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get(logger.HeaderRequestID))

	resp, err = fiberApp.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(logger.HeaderRequestID))
}

func TestRequestIDReachesUseCase(t *testing.T) {
	uc := new(MockNoteUseCase)
	uc.On("ListHistory", mock.MatchedBy(func(ctx context.Context) bool {
		id, ok := logger.GetRequestID(ctx)
		return ok && id == "trace-42"
	})).Return([]*entities.Note{}, nil)
	fiberApp := newTestApp(t, uc, new(MockHealthChecker))

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	req.Header.Set(logger.HeaderRequestID, "trace-42")
	resp, err := fiberApp.Test(req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	uc.AssertExpectations(t)
}

func TestCORS(t *testing.T) {
	fiberApp := newTestApp(t, new(MockNoteUseCase), new(MockHealthChecker))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := fiberApp.Test(req)

	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestPanicRecovery(t *testing.T) {
	uc := new(MockNoteUseCase)
	uc.On("Summarize", mock.Anything, "boom").Run(func(_ mock.Arguments) {
		panic("analyzer exploded")
	})
	fiberApp := newTestApp(t, uc, new(MockHealthChecker))

	resp, body := doRequest(t, fiberApp, http.MethodPost, "/api/summarize", `{"text":"boom"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, body)
}

// memoryRepository хранит заметки в памяти для сквозного теста.
type memoryRepository struct {
	mu    sync.Mutex
	notes []*entities.Note
}

func (r *memoryRepository) Create(_ context.Context, note *entities.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	note.ID = fmt.Sprintf("note-%d", len(r.notes)+1)
	stored := *note
	r.notes = append(r.notes, &stored)
	return nil
}

func (r *memoryRepository) ListAll(_ context.Context) ([]*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entities.Note, 0, len(r.notes))
	for i := len(r.notes) - 1; i >= 0; i-- {
		n := *r.notes[i]
		result = append(result, &n)
	}
	return result, nil
}

type fixedAnalyzer struct{}

func (fixedAnalyzer) Analyze(_ context.Context, text string) (*entities.Summary, error) {
	return &entities.Summary{Summary: strings.ToUpper(text), Keywords: []string{"uppercase"}}, nil
}

func TestSummarizeSaveHistoryFlow(t *testing.T) {
	repo := &memoryRepository{}
	useCase := app.NewNoteUseCase(repo, fixedAnalyzer{})
	health := new(MockHealthChecker)
	fiberApp := httpAdapter.NewApp(5*time.Second, 5*time.Second, 1<<20)
	httpAdapter.SetupRouter(fiberApp, httpAdapter.RouterConfig{CORSOrigins: []string{"*"}}, useCase, health)

	resp, body := doRequest(t, fiberApp, http.MethodPost, "/api/summarize", `{"text":"cells divide"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &summary))
	savePayload, err := json.Marshal(map[string]any{
		"originalText": "cells divide",
		"summary":      summary["summary"],
		"keywords":     summary["keywords"],
	})
	require.NoError(t, err)

	resp, _ = doRequest(t, fiberApp, http.MethodPost, "/api/save", string(savePayload))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doRequest(t, fiberApp, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var history []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "cells divide", history[0]["originalText"])
	assert.Equal(t, "CELLS DIVIDE", history[0]["summary"])
	assert.Equal(t, []any{"uppercase"}, history[0]["keywords"])
	assert.Equal(t, "note-1", history[0]["_id"])
}
