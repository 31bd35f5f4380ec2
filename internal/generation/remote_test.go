package generation

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/promptlab/promptlab/internal/llm"
	"github.com/promptlab/promptlab/internal/models"
)

type scriptedReply struct {
	response *llm.Response
	err      error
}

// scriptedClient replays canned replies in call order, repeating the last
// one, and records every request it saw.
type scriptedClient struct {
	calls   []llm.Request
	replies []scriptedReply
}

func (c *scriptedClient) GenerateText(ctx context.Context, request llm.Request) (*llm.Response, error) {
	c.calls = append(c.calls, request)
	i := len(c.calls) - 1
	if i >= len(c.replies) {
		i = len(c.replies) - 1
	}
	reply := c.replies[i]
	return reply.response, reply.err
}

func testRemote(client llm.Client) *RemoteGenerator {
	logger := zerolog.Nop()
	return NewRemoteGenerator(client, RemoteConfig{
		FallbackModels: []string{"fallback-1", "fallback-2", "fallback-3"},
		Backoff:        BackoffConfig{BaseDelay: time.Millisecond, Factor: 2, MaxDelay: 4 * time.Millisecond},
		RequestTimeout: time.Second,
	}, seededMock(1), &logger)
}

func transientErr(status int) error {
	return &llm.ProviderError{Provider: "test", StatusCode: status, Message: "transient"}
}

func permanentErr() error {
	return &llm.ProviderError{Provider: "test", StatusCode: 401, Message: "denied"}
}

var testParams = models.GenerationParameters{
	Temperature: 0.55,
	TopP:        0.9,
	MaxTokens:   256,
	ModelID:     "requested-model",
}

func TestGenerateFirstModelSucceeds(t *testing.T) {
	client := &scriptedClient{replies: []scriptedReply{
		{response: &llm.Response{Content: "generated text", TokensUsed: 42}},
	}}
	generator := testRemote(client)

	result := generator.Generate(context.Background(), "a prompt", testParams)

	if len(client.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(client.calls))
	}
	if result.Source != models.SourceRemote {
		t.Errorf("Source: %s, want remote", result.Source)
	}
	if result.ModelID != "requested-model" {
		t.Errorf("ModelID: %s, want requested-model", result.ModelID)
	}
	if result.Content != "generated text" || result.TokensUsed != 42 {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.Parameters != testParams {
		t.Errorf("parameters not echoed: %+v", result.Parameters)
	}
}

func TestGeneratePassesPreambleAndParameters(t *testing.T) {
	client := &scriptedClient{replies: []scriptedReply{
		{response: &llm.Response{Content: "ok"}},
	}}
	generator := testRemote(client)

	generator.Generate(context.Background(), "raw prompt", testParams)

	call := client.calls[0]
	if call.System != preamble {
		t.Errorf("System: %q, want the fixed preamble", call.System)
	}
	if call.Prompt != "raw prompt" {
		t.Errorf("Prompt: %q", call.Prompt)
	}
	if call.Temperature != 0.55 || call.TopP != 0.9 || call.MaxTokens != 256 {
		t.Errorf("parameters not forwarded: %+v", call)
	}
}

func TestGenerateEmptyContentAdvancesToNextModel(t *testing.T) {
	client := &scriptedClient{replies: []scriptedReply{
		{response: &llm.Response{Content: "   "}},
		{response: &llm.Response{Content: "second model answer"}},
	}}
	generator := testRemote(client)

	result := generator.Generate(context.Background(), "a prompt", testParams)

	if len(client.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(client.calls))
	}
	if client.calls[0].ModelID != "requested-model" || client.calls[1].ModelID != "fallback-1" {
		t.Errorf("ladder order wrong: %q then %q", client.calls[0].ModelID, client.calls[1].ModelID)
	}
	if result.Source != models.SourceRemote || result.ModelID != "fallback-1" {
		t.Errorf("result should come from fallback-1: %+v", result)
	}
}

func TestGenerateTransientWalksWholeLadder(t *testing.T) {
	client := &scriptedClient{replies: []scriptedReply{
		{err: transientErr(429)},
		{err: transientErr(500)},
		{err: transientErr(502)},
		{err: transientErr(503)},
	}}
	generator := testRemote(client)

	result := generator.Generate(context.Background(), "a prompt", testParams)

	if len(client.calls) != 4 {
		t.Fatalf("expected 4 calls (requested + 3 fallbacks), got %d", len(client.calls))
	}
	want := []string{"requested-model", "fallback-1", "fallback-2", "fallback-3"}
	for i, model := range want {
		if client.calls[i].ModelID != model {
			t.Errorf("call %d hit %q, want %q", i, client.calls[i].ModelID, model)
		}
	}
	if result.Source != models.SourceMock {
		t.Errorf("exhausted ladder must degrade to mock, got %s", result.Source)
	}
	if result.Content == "" {
		t.Error("degraded result must still carry content")
	}
}

func TestGeneratePermanentErrorDegradesImmediately(t *testing.T) {
	client := &scriptedClient{replies: []scriptedReply{
		{err: permanentErr()},
	}}
	generator := testRemote(client)

	result := generator.Generate(context.Background(), "a prompt", testParams)

	if len(client.calls) != 1 {
		t.Fatalf("permanent failure should not walk the ladder, got %d calls", len(client.calls))
	}
	if result.Source != models.SourceMock {
		t.Errorf("Source: %s, want mock", result.Source)
	}
}

func TestGenerateNoSameModelRetry(t *testing.T) {
	client := &scriptedClient{replies: []scriptedReply{
		{err: transientErr(503)},
	}}
	generator := testRemote(client)

	params := testParams
	params.ModelID = "fallback-1"
	generator.Generate(context.Background(), "a prompt", params)

	seen := map[string]int{}
	for _, call := range client.calls {
		seen[call.ModelID]++
	}
	for model, count := range seen {
		if count > 1 {
			t.Errorf("model %q was tried %d times", model, count)
		}
	}
	if len(client.calls) != 3 {
		t.Errorf("deduplicated ladder should have 3 rungs, got %d calls", len(client.calls))
	}
}

// A provider that only ever produces empty strings must still resolve with
// usable mock content.
func TestGenerateAlwaysEmptyProviderYieldsMock(t *testing.T) {
	client := &scriptedClient{replies: []scriptedReply{
		{response: &llm.Response{Content: ""}},
	}}
	generator := testRemote(client)

	result := generator.Generate(context.Background(), "Explain how tides work", testParams)

	if len(client.calls) != 4 {
		t.Fatalf("expected the whole ladder to be tried, got %d calls", len(client.calls))
	}
	if result.Source != models.SourceMock {
		t.Fatalf("Source: %s, want mock", result.Source)
	}
	if result.Content == "" {
		t.Error("mock content must not be empty")
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		attempt int
		count   int
		err     error
		want    fallbackAction
	}{
		{"Transient mid ladder", 0, 4, transientErr(429), retryNextModel},
		{"Empty content mid ladder", 1, 4, errEmptyContent, retryNextModel},
		{"Permanent mid ladder", 0, 4, permanentErr(), fallbackToMock},
		{"Transient on last rung", 3, 4, transientErr(503), fallbackToMock},
		{"Single model ladder", 0, 1, transientErr(429), fallbackToMock},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := decide(test.attempt, test.count, test.err); got != test.want {
				t.Errorf("decide(%d, %d, %v) = %d, want %d", test.attempt, test.count, test.err, got, test.want)
			}
		})
	}
}

func TestBackoffDelayLadder(t *testing.T) {
	backoff := DefaultBackoffConfig()

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 1000 * time.Millisecond},
		{1, 2000 * time.Millisecond},
		{2, 4000 * time.Millisecond},
		{3, 5000 * time.Millisecond},
		{10, 5000 * time.Millisecond},
	}

	for _, test := range tests {
		if got := backoff.delayFor(test.attempt); got != test.want {
			t.Errorf("delayFor(%d) = %s, want %s", test.attempt, got, test.want)
		}
	}
}

func TestModelLadderWithoutRequestedModel(t *testing.T) {
	generator := testRemote(&scriptedClient{replies: []scriptedReply{{response: &llm.Response{Content: "x"}}}})

	ladder := generator.modelLadder("")
	if len(ladder) != 3 {
		t.Fatalf("empty requested model should leave the 3 fallbacks, got %v", ladder)
	}
}
