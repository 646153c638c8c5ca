package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"physioblog/pkg/domain"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient("", ""); err == nil {
		t.Fatal("expected constructor error for blank api key")
	}
	if _, err := NewClient("", "   "); err == nil {
		t.Fatal("expected constructor error for whitespace api key")
	}
}

func TestCompleteSendsModelAndBearerAuth(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model": gotReq.Model,
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "Ice it for 20 minutes."}},
			},
			"usage": map[string]int{"prompt_tokens": 42, "completion_tokens": 8, "total_tokens": 50},
		})
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	messages := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "be brief"},
		{Role: domain.RoleUser, Content: "sprained ankle?"},
	}
	completion, err := client.Complete(context.Background(), messages, "llama-3.1-8b-instant")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
	if gotReq.Model != "llama-3.1-8b-instant" {
		t.Fatalf("request model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != domain.RoleSystem {
		t.Fatalf("request messages = %+v", gotReq.Messages)
	}
	if completion.Text != "Ice it for 20 minutes." {
		t.Fatalf("completion text = %q", completion.Text)
	}
	if completion.Model != "llama-3.1-8b-instant" {
		t.Fatalf("completion model = %q", completion.Model)
	}
	if completion.Usage.TotalTokens != 50 {
		t.Fatalf("usage total = %d", completion.Usage.TotalTokens)
	}
}

func TestCompleteSurfacesProviderErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Complete(context.Background(), []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}}, "m")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "rate limited" {
		t.Fatalf("api error message = %q", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("api error status = %d", apiErr.StatusCode)
	}
}

func TestCompleteDefaultsToUnknownErrorOnBareFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Complete(context.Background(), []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}}, "m")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "Unknown error" {
		t.Fatalf("api error message = %q", apiErr.Message)
	}
}

func TestCompleteWrapsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	client, err := NewClient(srv.URL, "test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	srv.Close()

	_, err = client.Complete(context.Background(), []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}}, "m")
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("network fault must not be an *APIError: %v", err)
	}
}

func TestCompleteRejectsEmptyInput(t *testing.T) {
	client, err := NewClient("http://localhost:0", "test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Complete(context.Background(), nil, "m"); err == nil {
		t.Fatal("expected error for empty message list")
	}
	if _, err := client.Complete(context.Background(), []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}}, ""); err == nil {
		t.Fatal("expected error for blank model")
	}
}

func TestWrappersPrependSystemPrompt(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":   gotReq.Model,
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": "ok"}}},
		})
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.AnswerBlogQuestion(context.Background(), "what is cupping?", "Cupping is...", "m"); err != nil {
		t.Fatalf("answer blog question: %v", err)
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != domain.RoleSystem || gotReq.Messages[0].Content != blogQuestionSystemPrompt {
		t.Fatalf("unexpected system message: %+v", gotReq.Messages[0])
	}
	if gotReq.Messages[1].Role != domain.RoleUser {
		t.Fatalf("unexpected user message role: %q", gotReq.Messages[1].Role)
	}

	wrappers := []struct {
		name   string
		call   func() error
		system string
	}{
		{"medical question", func() error {
			_, err := client.AnswerMedicalQuestion(context.Background(), "what causes sciatica?", "m")
			return err
		}, medicalSystemPrompt},
		{"analyze content", func() error {
			_, err := client.AnalyzeContent(context.Background(), "draft post text", "m")
			return err
		}, medicalSystemPrompt},
		{"advise condition", func() error {
			_, err := client.AdviseCondition(context.Background(), "frozen shoulder", "m")
			return err
		}, adviceSystemPrompt},
	}
	for _, wr := range wrappers {
		if err := wr.call(); err != nil {
			t.Fatalf("%s: %v", wr.name, err)
		}
		if gotReq.Messages[0].Content != wr.system {
			t.Fatalf("%s: unexpected system prompt %q", wr.name, gotReq.Messages[0].Content)
		}
	}
}
