package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/middleware"
)

// ======================================================
// Upload
// ======================================================

type fakeUploader struct {
	owner uuid.UUID
	data  []byte
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, ownerID uuid.UUID, data []byte) (string, error) {
	f.owner, f.data = ownerID, data
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/reference-images/" + ownerID.String() + "/x.webp", nil
}

type fakeImageValidator struct{ err error }

func (f fakeImageValidator) Validate([]byte) error { return f.err }

func multipartBody(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "ref.png")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func uploadRouter(h *UploadHandler, userID uuid.UUID) *gin.Engine {
	r := gin.New()
	r.POST("/upload", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	}, h.ReferenceImage)
	return r
}

func TestUpload_StoresValidImage(t *testing.T) {
	store := &fakeUploader{}
	userID := uuid.New()
	r := uploadRouter(NewUploadHandler(store, fakeImageValidator{}), userID)

	body, ct := multipartBody(t, "file", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, userID, store.owner)
	assert.Equal(t, []byte("png-bytes"), store.data)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestUpload_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		validator error
		store     error
		status    int
		code      string
	}{
		{"missing file", "other", nil, nil, http.StatusBadRequest, "invalid_request"},
		{"bad image", "file", errors.New("unsupported format"), nil, http.StatusBadRequest, "invalid_image"},
		{"storage down", "file", nil, errors.New("s3 timeout"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeUploader{err: tt.store}
			r := uploadRouter(NewUploadHandler(store, fakeImageValidator{err: tt.validator}), uuid.New())

			body, ct := multipartBody(t, tt.field, []byte("data"))
			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", ct)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Code)
		})
	}
}

// ======================================================
// Health
// ======================================================

type checkFunc func(ctx context.Context) error

func (f checkFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	ok := checkFunc(func(context.Context) error { return nil })
	down := checkFunc(func(context.Context) error { return errors.New("dial tcp: refused") })

	run := func(checks map[string]HealthChecker) (int, map[string]any) {
		r := gin.New()
		r.GET("/health", NewHealthHandler(checks).Health)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return w.Code, body
	}

	code, body := run(map[string]HealthChecker{"database": ok, "redis": ok})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	code, body = run(map[string]HealthChecker{"database": ok, "redis": down})
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "down", body["dependencies"].(map[string]any)["redis"])
}

// ======================================================
// CSRF token endpoint
// ======================================================

func TestCSRFToken_IsBoundToSession(t *testing.T) {
	csrf := middleware.NewCSRF(testSecret)

	r := gin.New()
	r.GET("/csrf", func(c *gin.Context) {
		c.Set(middleware.ContextSessionID, "sess-7")
		c.Next()
	}, NewCSRFHandler(csrf).Token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/csrf", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var body struct {
		CSRFToken string `json:"csrfToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, csrf.Valid("sess-7", body.CSRFToken))
	assert.False(t, csrf.Valid("sess-8", body.CSRFToken))
}
