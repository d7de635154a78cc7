package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sakif/content-remix/internal/apperror"
)

// stubOpenAI spins up an httptest server that plays the role of the OpenAI
// API, returning whatever status/body the test hands it. The real SDK does
// the request/response handling, so these tests cover our error mapping
// against the wire shapes the API actually produces.
func stubOpenAI(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return New("test-key", "gpt-4o-mini", srv.URL+"/v1")
}

func TestGenerate_Success(t *testing.T) {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": "rewritten text"}},
		},
	}
	raw, _ := json.Marshal(resp)
	client := stubOpenAI(t, http.StatusOK, string(raw))

	got, err := client.Generate(context.Background(), "some prompt", 1000)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "rewritten text" {
		t.Errorf("Generate() = %q, want %q", got, "rewritten text")
	}
}

func TestGenerate_NoChoices(t *testing.T) {
	client := stubOpenAI(t, http.StatusOK, `{"choices":[]}`)

	_, err := client.Generate(context.Background(), "prompt", 1000)
	if !errors.Is(err, apperror.ErrUpstream) {
		t.Errorf("Generate() error = %v, want ErrUpstream", err)
	}
}

func TestGenerate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		target error
	}{
		{
			name:   "401 maps to Unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`,
			target: apperror.ErrUnauthorized,
		},
		{
			name:   "429 maps to RateLimited",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"message":"Rate limit reached","type":"rate_limit_error"}}`,
			target: apperror.ErrRateLimited,
		},
		{
			name:   "500 maps to Upstream",
			status: http.StatusInternalServerError,
			body:   `{"error":{"message":"The server had an error","type":"server_error"}}`,
			target: apperror.ErrUpstream,
		},
		{
			name:   "503 maps to Upstream",
			status: http.StatusServiceUnavailable,
			body:   `{"error":{"message":"Overloaded","type":"server_error"}}`,
			target: apperror.ErrUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := stubOpenAI(t, tt.status, tt.body)

			_, err := client.Generate(context.Background(), "prompt", 1000)
			if !errors.Is(err, tt.target) {
				t.Errorf("Generate() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestGenerate_TransportFailure(t *testing.T) {
	// Point the client at a server that is already closed — a pure
	// transport failure with no HTTP status at all.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := New("test-key", "gpt-4o-mini", url+"/v1")

	_, err := client.Generate(context.Background(), "prompt", 1000)
	if !errors.Is(err, apperror.ErrUpstream) {
		t.Errorf("Generate() error = %v, want ErrUpstream", err)
	}
}

func TestGenerate_UpstreamDetailPreserved(t *testing.T) {
	client := stubOpenAI(t, http.StatusInternalServerError,
		`{"error":{"message":"The server had an error","type":"server_error"}}`)

	_, err := client.Generate(context.Background(), "prompt", 1000)

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Generate() error = %T, want *apperror.AppError", err)
	}
	if appErr.Detail == "" {
		t.Error("upstream detail should be preserved on the AppError")
	}
}
