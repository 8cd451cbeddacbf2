package demo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"

	"freemodels-server/services/catalog-api/internal/utils/platformerrors"
)

type fakeCompletions struct {
	calls int
	reply string
	err   error
}

func (f *fakeCompletions) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.reply}},
		},
	}, nil
}

func TestProbeReturnsReply(t *testing.T) {
	client := &fakeCompletions{reply: "  hello there  "}
	svc := NewService(client, "vendor/default", time.Minute)

	result, err := svc.Probe(context.Background(), "vendor/model-a")
	if err != nil {
		t.Fatal(err)
	}
	if result.Reply != "hello there" {
		t.Errorf("reply = %q", result.Reply)
	}
	if result.Model != "vendor/model-a" || result.FromCache {
		t.Errorf("result = %+v", result)
	}
}

func TestProbeUsesDefaultModel(t *testing.T) {
	client := &fakeCompletions{reply: "ok"}
	svc := NewService(client, "vendor/default", time.Minute)

	result, err := svc.Probe(context.Background(), "  ")
	if err != nil {
		t.Fatal(err)
	}
	if result.Model != "vendor/default" {
		t.Errorf("model = %q, want vendor/default", result.Model)
	}
}

func TestProbeRequiresSomeModel(t *testing.T) {
	svc := NewService(&fakeCompletions{}, "", time.Minute)
	_, err := svc.Probe(context.Background(), "")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestProbeCachesWithinTTL(t *testing.T) {
	client := &fakeCompletions{reply: "ok"}
	svc := NewService(client, "vendor/default", 5*time.Minute)
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	first, _ := svc.Probe(context.Background(), "vendor/m")
	if first.FromCache {
		t.Fatal("first probe served from cache")
	}

	clock = clock.Add(2 * time.Minute)
	second, _ := svc.Probe(context.Background(), "vendor/m")
	if !second.FromCache {
		t.Error("probe within TTL not served from cache")
	}
	if client.calls != 1 {
		t.Errorf("upstream called %d times, want 1", client.calls)
	}

	clock = clock.Add(10 * time.Minute)
	third, _ := svc.Probe(context.Background(), "vendor/m")
	if third.FromCache {
		t.Error("expired cache entry served")
	}
	if client.calls != 2 {
		t.Errorf("upstream called %d times, want 2", client.calls)
	}
}

func TestProbeCachesFailures(t *testing.T) {
	client := &fakeCompletions{err: errors.New("model overloaded")}
	svc := NewService(client, "vendor/default", time.Minute)

	first, err := svc.Probe(context.Background(), "vendor/m")
	if err != nil {
		t.Fatal(err)
	}
	if first.Err == "" {
		t.Error("upstream failure not reported in result")
	}

	svc.Probe(context.Background(), "vendor/m")
	if client.calls != 1 {
		t.Errorf("failed probe retried within TTL: %d calls", client.calls)
	}
}

func TestProbeCacheIsPerModel(t *testing.T) {
	client := &fakeCompletions{reply: "ok"}
	svc := NewService(client, "vendor/default", time.Minute)

	svc.Probe(context.Background(), "vendor/a")
	svc.Probe(context.Background(), "vendor/b")
	if client.calls != 2 {
		t.Errorf("distinct models shared a cache entry: %d calls", client.calls)
	}
}
