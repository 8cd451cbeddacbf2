package openrouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resty.dev/v3"
)

func TestModelIsFree(t *testing.T) {
	tests := []struct {
		name    string
		pricing Pricing
		want    bool
	}{
		{
			name:    "both zero",
			pricing: Pricing{Prompt: "0", Completion: "0"},
			want:    true,
		},
		{
			name:    "zero with decimals",
			pricing: Pricing{Prompt: "0.000", Completion: "0"},
			want:    true,
		},
		{
			name:    "paid prompt",
			pricing: Pricing{Prompt: "0.001", Completion: "0"},
			want:    false,
		},
		{
			name:    "paid completion",
			pricing: Pricing{Prompt: "0", Completion: "0.002"},
			want:    false,
		},
		{
			name:    "missing prices",
			pricing: Pricing{},
			want:    false,
		},
		{
			name:    "unparseable price",
			pricing: Pricing{Prompt: "free", Completion: "0"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Model{Pricing: tt.pricing}
			if got := m.IsFree(); got != tt.want {
				t.Errorf("IsFree() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEffectiveContextLength(t *testing.T) {
	m := Model{ContextLength: 8192, TopProvider: TopProvider{ContextLength: 131072}}
	if got := m.EffectiveContextLength(); got != 131072 {
		t.Errorf("EffectiveContextLength() = %d, want 131072", got)
	}

	m = Model{ContextLength: 8192}
	if got := m.EffectiveContextLength(); got != 8192 {
		t.Errorf("EffectiveContextLength() = %d, want 8192", got)
	}
}

func TestListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"id":"vendor/free-model","name":"Free Model","context_length":32768,"pricing":{"prompt":"0","completion":"0"},"supported_parameters":["tools"]},
			{"id":"vendor/paid-model","name":"Paid Model","context_length":8192,"pricing":{"prompt":"0.001","completion":"0.002"}}
		]}`))
	}))
	defer server.Close()

	client := NewClient(resty.New().SetTimeout(2*time.Second), server.URL, "test-key", nil)
	models, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("ListModels() returned %d models, want 2", len(models))
	}

	free := FreeModels(models)
	if len(free) != 1 || free[0].ID != "vendor/free-model" {
		t.Fatalf("FreeModels() = %v, want only vendor/free-model", free)
	}
}

func TestListModelsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(resty.New().SetTimeout(2*time.Second), server.URL, "", nil)
	if _, err := client.ListModels(context.Background()); err == nil {
		t.Fatal("ListModels() expected error on upstream 502")
	}
}
