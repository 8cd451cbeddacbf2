package models

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"freemodels-server/services/catalog-api/internal/domain/apikey"
	"freemodels-server/services/catalog-api/internal/domain/availability"
	"freemodels-server/services/catalog-api/internal/domain/catalog"
	"freemodels-server/services/catalog-api/internal/domain/feedback"
	"freemodels-server/services/catalog-api/internal/domain/query"
	"freemodels-server/services/catalog-api/internal/domain/syncmeta"
	"freemodels-server/services/catalog-api/internal/infrastructure/openrouter"
	"freemodels-server/services/catalog-api/internal/interfaces/httpserver/middlewares"
	"freemodels-server/services/catalog-api/internal/interfaces/httpserver/routes/public"
)

type memModelRepo struct {
	mu     sync.Mutex
	models map[string]*catalog.Model
}

func (m *memModelRepo) Upsert(ctx context.Context, model *catalog.Model) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *model
	m.models[model.PublicID] = &copied
	return nil
}

func (m *memModelRepo) FindByPublicID(ctx context.Context, publicID string) (*catalog.Model, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	model, ok := m.models[publicID]
	if !ok {
		return nil, errors.New("not found")
	}
	return model, nil
}

func (m *memModelRepo) FindByFilter(ctx context.Context, filter catalog.ModelFilter, sort catalog.SortKey, p *query.Pagination) ([]*catalog.Model, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*catalog.Model
	for _, model := range m.models {
		if filter.Active != nil && model.IsActive != *filter.Active {
			continue
		}
		out = append(out, model)
	}
	return catalog.SortModels(catalog.FilterModelsByUseCase(out, filter.UseCases), sort), nil
}

func (m *memModelRepo) ListPublicIDs(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.models))
	for id := range m.models {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memModelRepo) CountActive(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, model := range m.models {
		if model.IsActive {
			n++
		}
	}
	return n, nil
}

func (m *memModelRepo) MarkInactiveExcept(ctx context.Context, keep []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keepSet := map[string]bool{}
	for _, id := range keep {
		keepSet[id] = true
	}
	var n int64
	for id, model := range m.models {
		if model.IsActive && !keepSet[id] {
			model.IsActive = false
			n++
		}
	}
	return n, nil
}

type memFeedbackRepo struct {
	mu   sync.Mutex
	rows []*feedback.Feedback
}

func (m *memFeedbackRepo) Create(ctx context.Context, fb *feedback.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, fb)
	return nil
}

func (m *memFeedbackRepo) FindSince(ctx context.Context, since time.Time, source string) ([]*feedback.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*feedback.Feedback
	for _, fb := range m.rows {
		if !since.IsZero() && fb.CreatedAt.Before(since) {
			continue
		}
		if source != "" && fb.Source != source {
			continue
		}
		out = append(out, fb)
	}
	return out, nil
}

func (m *memFeedbackRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type memKeyRepo struct {
	mu     sync.Mutex
	byHash map[string]*apikey.APIKey
}

func (m *memKeyRepo) Create(ctx context.Context, key *apikey.APIKey) (*apikey.APIKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byHash[key.Hash] = key
	return key, nil
}

func (m *memKeyRepo) FindByHash(ctx context.Context, hash string) (*apikey.APIKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byHash[hash], nil
}

func (m *memKeyRepo) UpdatePreferences(ctx context.Context, id string, prefs apikey.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range m.byHash {
		if key.ID == id {
			key.Preferences = prefs
		}
	}
	return nil
}

func (m *memKeyRepo) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	return nil
}

func (m *memKeyRepo) MarkRevoked(ctx context.Context, id string, revokedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range m.byHash {
		if key.ID == id {
			at := revokedAt
			key.RevokedAt = &at
		}
	}
	return nil
}

type memMetaRepo struct {
	mu      sync.Mutex
	entries map[string]*syncmeta.Entry
}

func (m *memMetaRepo) Get(ctx context.Context, key string) (*syncmeta.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[key], nil
}

func (m *memMetaRepo) Upsert(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = &syncmeta.Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	return nil
}

type memSnapshotRepo struct{}

func (memSnapshotRepo) RecordDay(ctx context.Context, day string, modelPublicIDs []string) error {
	return nil
}

func (memSnapshotRepo) FindSince(ctx context.Context, firstDay string) ([]*availability.Snapshot, error) {
	return nil, nil
}

type staticUpstream struct {
	models []openrouter.Model
}

func (u *staticUpstream) ListModels(ctx context.Context) ([]openrouter.Model, error) {
	return u.models, nil
}

type testStack struct {
	engine *gin.Engine
	secret string
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	modelRepo := &memModelRepo{models: map[string]*catalog.Model{}}
	feedbackRepo := &memFeedbackRepo{}
	keyRepo := &memKeyRepo{byHash: map[string]*apikey.APIKey{}}
	metaRepo := &memMetaRepo{entries: map[string]*syncmeta.Entry{}}

	upstream := &staticUpstream{models: []openrouter.Model{
		{
			ID:            "acme/quasar-7b:free",
			Name:          "Quasar 7B",
			ContextLength: 32768,
			Architecture: openrouter.Architecture{
				Modality:        "text->text",
				InputModalities: []string{"text"},
			},
			Pricing:             openrouter.Pricing{Prompt: "0", Completion: "0"},
			SupportedParameters: []string{"temperature"},
		},
		{
			ID:      "acme/paid-72b",
			Name:    "Paid 72B",
			Pricing: openrouter.Pricing{Prompt: "0.002", Completion: "0.004"},
		},
	}}

	syncService := catalog.NewSyncService(upstream, modelRepo, metaRepo, memSnapshotRepo{}, catalog.SyncOptions{})
	feedbackService := feedback.NewService(feedbackRepo)
	catalogService := catalog.NewService(modelRepo, feedbackService, syncService)
	keyService := apikey.NewService(keyRepo)

	key, secret, err := keyService.Issue(context.Background(), "test")
	if err != nil {
		t.Fatalf("issue key: %v", err)
	}
	if key.ID == "" {
		t.Fatal("issued key has no id")
	}

	engine := gin.New()
	api := engine.Group("/api")
	passthrough := func(c *gin.Context) { c.Next() }

	// mounted under /api/v1 exactly as the server registers the versioned API
	modelsRoute := NewModelsRoute(catalogService, feedbackService, keyService)
	modelsRoute.RegisterRouter(api.Group("/v1"), middlewares.RequireAPIKey(keyService), passthrough)

	publicRoute := public.NewPublicRoute(feedbackService, availability.NewService(memSnapshotRepo{}), nil)
	publicRoute.RegisterRouter(api, middlewares.OptionalAPIKey(keyService))

	return &testStack{engine: engine, secret: secret}
}

func (s *testStack) do(method, target, body string, withKey bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if withKey {
		req.Header.Set("Authorization", "Bearer "+s.secret)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func TestFeedbackFlowsIntoHealth(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do("POST", "/api/v1/models/feedback",
		`{"modelId":"acme/quasar-7b:free","success":true}`, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("feedback status = %d, body %s", rec.Code, rec.Body.String())
	}
	rec = stack.do("POST", "/api/v1/models/feedback",
		`{"modelId":"acme/quasar-7b:free","success":false,"issue":"rate_limited"}`, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("issue report status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = stack.do("GET", "/api/health?myReports=true", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
	var health struct {
		Models map[string]feedback.Counts `json:"models"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatal(err)
	}
	counts := health.Models["acme/quasar-7b:free"]
	if counts.SuccessCount != 1 || counts.RateLimited != 1 {
		t.Errorf("counts = %+v, want 1 success and 1 rate_limited", counts)
	}
	if counts.ErrorRate != 50 {
		t.Errorf("errorRate = %v, want 50", counts.ErrorRate)
	}
}

func TestModelListingShowsOnlyFreeModels(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do("GET", "/api/v1/models/ids", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("ids status = %d, body %s", rec.Code, rec.Body.String())
	}
	var ids ModelIDsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &ids); err != nil {
		t.Fatal(err)
	}
	if ids.Count != 1 || len(ids.IDs) != 1 || ids.IDs[0] != "acme/quasar-7b:free" {
		t.Errorf("ids = %+v, want only the free model", ids)
	}

	rec = stack.do("GET", "/api/v1/models/full", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("full status = %d", rec.Code)
	}
	var list ModelListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list.Count != 1 || list.Models[0].PublicID != "acme/quasar-7b:free" {
		t.Errorf("models = %+v", list.Models)
	}
	if rec.Header().Get(HeaderDataStale) != "" {
		t.Error("fresh data should not carry the stale header")
	}
}

func TestListingRequiresAPIKey(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do("GET", "/api/v1/models/ids", "", false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	rec = stack.do("POST", "/api/v1/models/feedback",
		`{"modelId":"acme/quasar-7b:free","success":true}`, false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("feedback status = %d, want 401", rec.Code)
	}
}

func TestPreferencesRoundTripThroughAPI(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do("PUT", "/api/v1/models/preferences",
		`{"use_cases":["vision","banana"],"sort":"newest","top_n":5}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = stack.do("GET", "/api/v1/models/preferences", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var prefs apikey.Preferences
	if err := json.Unmarshal(rec.Body.Bytes(), &prefs); err != nil {
		t.Fatal(err)
	}
	if len(prefs.UseCases) != 1 || prefs.UseCases[0] != "vision" {
		t.Errorf("useCases = %v, want unknown tags dropped", prefs.UseCases)
	}
	if prefs.Sort != "newest" || prefs.TopN != 5 {
		t.Errorf("prefs = %+v", prefs)
	}
}
