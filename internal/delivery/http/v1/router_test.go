package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-resume-builder/config"
	v1 "go-resume-builder/internal/delivery/http/v1"
	"go-resume-builder/internal/repository/memory"
	"go-resume-builder/internal/schema"
	"go-resume-builder/internal/usecase"
	"go-resume-builder/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/mock"
)

type stubExtractor struct {
	mock.Mock
}

func (s *stubExtractor) ExtractText(data []byte) (string, error) {
	args := s.Called(data)
	return args.String(0), args.Error(1)
}

type stubStructurer struct {
	mock.Mock
}

func (s *stubStructurer) StructureText(ctx context.Context, text string) (string, error) {
	args := s.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init()
}

func testConfig() *config.Config {
	return &config.Config{
		Port:                     "8080",
		FrontendURL:              "http://localhost:3000",
		RateLimitWindowSeconds:   60,
		RateLimitParseThreshold:  100,
		RateLimitGlobalThreshold: 1000,
		MaxUploadMB:              10,
	}
}

func newTestRouter(t *testing.T, structurerOutput string, structurerErr error) (*gin.Engine, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	schemaValidator, err := schema.NewValidator()
	require.NoError(t, err)

	extractor := new(stubExtractor)
	extractor.On("ExtractText", mock.Anything).Return("extracted resume text", nil)

	structurer := new(stubStructurer)
	structurer.On("StructureText", mock.Anything, mock.Anything).Return(structurerOutput, structurerErr)

	router := v1.NewRouter(v1.RouterDeps{
		ResumeUC: usecase.NewResumeUsecase(store, schemaValidator, validator.New()),
		ParseUC:  usecase.NewParseUsecase(extractor, structurer),
		Config:   testConfig(),
	})
	return router, store
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const adaResume = `{
	"basics": {
		"name": "Ada Lovelace",
		"label": "Analyst",
		"email": "ada@example.com",
		"summary": "Wrote the first published algorithm intended for a machine."
	},
	"work": [{
		"company": "Analytical Engines Ltd",
		"position": "Programmer",
		"startDate": "1840-01",
		"highlights": ["Published the first algorithm for the Analytical Engine"]
	}],
	"education": [{
		"institution": "Home tutoring",
		"area": "Mathematics",
		"studyType": "Private",
		"startDate": "1825-01"
	}],
	"skills": [{"name": "Mathematics", "keywords": ["analysis", "number theory"]}]
}`

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, "{}", nil)

	w := get(router, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestResumeEndpoints(t *testing.T) {
	t.Run("Should create a resume and read it back unchanged", func(t *testing.T) {
		router, _ := newTestRouter(t, "{}", nil)

		w := postJSON(router, "/api/resume", adaResume)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var created map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		id, ok := created["id"].(string)
		require.True(t, ok)
		require.NotEmpty(t, id)

		w = get(router, "/api/resume?id="+id)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var fetched map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))

		basics := fetched["basics"].(map[string]interface{})
		assert.Equal(t, "Ada Lovelace", basics["name"])

		work := fetched["work"].([]interface{})
		require.Len(t, work, 1)
		assert.Equal(t, "1840-01", work[0].(map[string]interface{})["startDate"])
	})

	t.Run("Should return 404 with the expected body for an unknown id", func(t *testing.T) {
		router, _ := newTestRouter(t, "{}", nil)

		w := get(router, "/api/resume?id=99999999")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error": "Resume not found"}`, w.Body.String())
	})

	t.Run("Should return the full list when no id is given", func(t *testing.T) {
		router, _ := newTestRouter(t, "{}", nil)

		w := get(router, "/api/resume")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())

		postJSON(router, "/api/resume", adaResume)
		postJSON(router, "/api/resume", `{"basics": {"name": "Grace Hopper", "email": "grace@example.com"}}`)

		w = get(router, "/api/resume")
		require.Equal(t, http.StatusOK, w.Code)

		var list []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list, 2)
	})

	t.Run("Should reject an invalid document with details and persist nothing", func(t *testing.T) {
		router, store := newTestRouter(t, "{}", nil)

		w := postJSON(router, "/api/resume", `{"basics": {"email": "not-an-email"}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Invalid resume format", body["error"])
		details, ok := body["details"].([]interface{})
		require.True(t, ok)
		assert.NotEmpty(t, details)

		docs, err := store.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("Should reject a malformed JSON body as invalid format", func(t *testing.T) {
		router, _ := newTestRouter(t, "{}", nil)

		w := postJSON(router, "/api/resume", `{"basics": `)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Invalid resume format", body["error"])
	})
}

func postPDF(router *gin.Engine, filename string, data []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", filename)
	fw.Write(data)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/resume/parse", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestParseEndpoint(t *testing.T) {
	pdfData := []byte("%PDF-1.4 fake body")

	t.Run("Should return 400 when no file is attached", func(t *testing.T) {
		router, _ := newTestRouter(t, "{}", nil)

		req := httptest.NewRequest(http.MethodPost, "/api/resume/parse", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "No file provided"}`, w.Body.String())
	})

	t.Run("Should return the structured document without persisting it", func(t *testing.T) {
		router, store := newTestRouter(t, `{"basics": {"name": "Ada Lovelace", "email": "ada@example.com"}}`, nil)

		w := postPDF(router, "resume.pdf", pdfData)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var parsed map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
		basics := parsed["basics"].(map[string]interface{})
		assert.Equal(t, "Ada Lovelace", basics["name"])

		docs, err := store.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("Should return 500 when the model output is not JSON", func(t *testing.T) {
		router, _ := newTestRouter(t, "I could not read this document.", nil)

		w := postPDF(router, "resume.pdf", pdfData)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error": "Failed to parse resume"}`, w.Body.String())
	})

	t.Run("Should reject a non-PDF upload", func(t *testing.T) {
		router, _ := newTestRouter(t, "{}", nil)

		w := postPDF(router, "resume.txt", []byte("plain text"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "File must be a PDF document"}`, w.Body.String())
	})
}
