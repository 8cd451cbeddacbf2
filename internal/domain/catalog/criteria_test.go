package catalog

import (
	"reflect"
	"testing"
	"time"
)

func testModels() []*Model {
	created := func(s string) *time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return &t
	}
	return []*Model{
		{
			PublicID:            "vendor/chat-small",
			Modality:            ModalityTextToText,
			ContextLength:       8192,
			MaxCompletionTokens: 4096,
			SupportedParameters: []string{"temperature", "top_p"},
			UpstreamCreatedAt:   created("2025-01-01T00:00:00Z"),
		},
		{
			PublicID:            "vendor/vision-large",
			Modality:            "text+image->text",
			InputModalities:     []string{"text", "image"},
			OutputModalities:    []string{"text"},
			ContextLength:       131072,
			MaxCompletionTokens: 8192,
			SupportedParameters: []string{"temperature", "tools", "reasoning"},
			UpstreamCreatedAt:   created("2025-06-01T00:00:00Z"),
		},
		{
			PublicID:            "vendor/tools-mid",
			Modality:            ModalityTextToText,
			OutputModalities:    []string{"text"},
			ContextLength:       32768,
			MaxCompletionTokens: 16384,
			SupportedParameters: []string{"tools", "include_reasoning"},
			UpstreamCreatedAt:   created("2025-03-01T00:00:00Z"),
		},
		{
			PublicID:      "vendor/bare",
			Modality:      "audio->text",
			ContextLength: 200000,
		},
	}
}

func TestFilterModelsByUseCase(t *testing.T) {
	models := testModels()

	tests := []struct {
		name     string
		useCases []UseCase
		wantIDs  []string
	}{
		{"no filter returns all", nil, []string{"vendor/chat-small", "vendor/vision-large", "vendor/tools-mid", "vendor/bare"}},
		{"chat", []UseCase{UseCaseChat}, []string{"vendor/chat-small", "vendor/vision-large", "vendor/tools-mid"}},
		{"vision", []UseCase{UseCaseVision}, []string{"vendor/vision-large"}},
		{"tools", []UseCase{UseCaseTools}, []string{"vendor/vision-large", "vendor/tools-mid"}},
		{"longContext", []UseCase{UseCaseLongContext}, []string{"vendor/vision-large", "vendor/bare"}},
		{"reasoning matches either parameter", []UseCase{UseCaseReasoning}, []string{"vendor/vision-large", "vendor/tools-mid"}},
		{"combined tags use AND semantics", []UseCase{UseCaseTools, UseCaseLongContext}, []string{"vendor/vision-large"}},
		{"unsatisfiable combination", []UseCase{UseCaseVision, UseCaseReasoning, UseCaseLongContext, UseCaseChat, UseCaseTools}, []string{"vendor/vision-large"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterModelsByUseCase(models, tt.useCases)
			gotIDs := make([]string, 0, len(got))
			for _, m := range got {
				gotIDs = append(gotIDs, m.PublicID)
			}
			if !reflect.DeepEqual(gotIDs, tt.wantIDs) {
				t.Errorf("got %v, want %v", gotIDs, tt.wantIDs)
			}
		})
	}
}

func TestFilterModelsByUseCaseOrderIndependent(t *testing.T) {
	models := testModels()
	forward := FilterModelsByUseCase(models, []UseCase{UseCaseChat, UseCaseTools, UseCaseLongContext})
	backward := FilterModelsByUseCase(models, []UseCase{UseCaseLongContext, UseCaseTools, UseCaseChat})
	if !reflect.DeepEqual(forward, backward) {
		t.Errorf("filter result depends on tag order: %v vs %v", forward, backward)
	}
}

func TestFilterModelsByUseCaseNilFields(t *testing.T) {
	m := &Model{PublicID: "vendor/empty"}
	for uc := range UseCaseCriteria {
		// must never panic on a model with nil slices
		_ = FilterModelsByUseCase([]*Model{m}, []UseCase{uc})
	}
	if got := FilterModelsByUseCase([]*Model{m}, []UseCase{UseCaseVision}); len(got) != 0 {
		t.Errorf("nil-field model matched vision: %v", got)
	}
}

func TestParseUseCases(t *testing.T) {
	got := ParseUseCases([]string{"chat", "banana", "vision", "", "tools"})
	want := []UseCase{UseCaseChat, UseCaseVision, UseCaseTools}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		raw  string
		want SortKey
	}{
		{"contextLength", SortContextLength},
		{"maxOutput", SortMaxOutput},
		{"capable", SortCapable},
		{"leastIssues", SortLeastIssues},
		{"newest", SortNewest},
		{"", DefaultSortKey},
		{"garbage", DefaultSortKey},
	}
	for _, tt := range tests {
		if got := ParseSortKey(tt.raw); got != tt.want {
			t.Errorf("ParseSortKey(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestSortModels(t *testing.T) {
	models := testModels()

	tests := []struct {
		name    string
		key     SortKey
		wantIDs []string
	}{
		{"contextLength descending", SortContextLength, []string{"vendor/bare", "vendor/vision-large", "vendor/tools-mid", "vendor/chat-small"}},
		{"maxOutput descending", SortMaxOutput, []string{"vendor/tools-mid", "vendor/vision-large", "vendor/chat-small", "vendor/bare"}},
		{"capable by parameter count", SortCapable, []string{"vendor/vision-large", "vendor/tools-mid", "vendor/chat-small", "vendor/bare"}},
		{"newest with missing date last", SortNewest, []string{"vendor/vision-large", "vendor/tools-mid", "vendor/chat-small", "vendor/bare"}},
		{"unknown key falls back to default", SortKey("nope"), []string{"vendor/bare", "vendor/vision-large", "vendor/tools-mid", "vendor/chat-small"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortModels(models, tt.key)
			gotIDs := make([]string, 0, len(got))
			for _, m := range got {
				gotIDs = append(gotIDs, m.PublicID)
			}
			if !reflect.DeepEqual(gotIDs, tt.wantIDs) {
				t.Errorf("got %v, want %v", gotIDs, tt.wantIDs)
			}
		})
	}
}

func TestSortModelsLeastIssuesAscending(t *testing.T) {
	models := []*Model{
		{PublicID: "a", IssueCount: 5, ContextLength: 1},
		{PublicID: "b", IssueCount: 0, ContextLength: 2},
		{PublicID: "c", IssueCount: 0, ContextLength: 9},
		{PublicID: "d", IssueCount: 2, ContextLength: 3},
	}
	got := SortModels(models, SortLeastIssues)
	wantIDs := []string{"c", "b", "d", "a"} // ties broken by context length desc
	for i, m := range got {
		if m.PublicID != wantIDs[i] {
			t.Fatalf("position %d: got %s, want %s", i, m.PublicID, wantIDs[i])
		}
	}
}

func TestSortModelsDoesNotMutateInput(t *testing.T) {
	models := testModels()
	originalFirst := models[0].PublicID
	_ = SortModels(models, SortContextLength)
	if models[0].PublicID != originalFirst {
		t.Errorf("input slice reordered, first element now %s", models[0].PublicID)
	}
}

func TestSortModelsDeterministic(t *testing.T) {
	models := testModels()
	first := SortModels(models, SortCapable)
	for i := 0; i < 10; i++ {
		again := SortModels(models, SortCapable)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("sort is not deterministic across runs")
		}
	}
}
