package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"freemodels-server/services/catalog-api/internal/domain/requestlog"
)

type captureRequestLogRepo struct {
	mu      sync.Mutex
	entries []*requestlog.RequestLog
	err     error
	done    chan struct{}
}

func (r *captureRequestLogRepo) Create(ctx context.Context, entry *requestlog.RequestLog) error {
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
	r.done <- struct{}{}
	return r.err
}

func (r *captureRequestLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func newRequestLogEngine(repo *captureRequestLogRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestLogMiddleware(repo))
	engine.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return engine
}

func TestRequestLogMiddlewareRecordsRequest(t *testing.T) {
	repo := &captureRequestLogRepo{done: make(chan struct{}, 1)}
	engine := newRequestLogEngine(repo)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping?x=1", nil))

	select {
	case <-repo.done:
	case <-time.After(2 * time.Second):
		t.Fatal("request log row was never written")
	}

	repo.mu.Lock()
	entry := repo.entries[0]
	repo.mu.Unlock()
	if entry.Method != http.MethodGet || entry.Path != "/ping" {
		t.Errorf("logged %s %s, want GET /ping", entry.Method, entry.Path)
	}
	if entry.Status != http.StatusNoContent {
		t.Errorf("logged status %d, want %d", entry.Status, http.StatusNoContent)
	}
}

func TestRequestLogMiddlewareSurvivesRepoFailure(t *testing.T) {
	repo := &captureRequestLogRepo{err: errors.New("db down"), done: make(chan struct{}, 1)}
	engine := newRequestLogEngine(repo)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d despite log failure", w.Code, http.StatusNoContent)
	}
	select {
	case <-repo.done:
	case <-time.After(2 * time.Second):
		t.Fatal("request log write never attempted")
	}
}
