package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moodic-labs/moodic/internal/core/ports"
)

func TestClient_Embed(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		responseBody string
		wantErr      bool
		wantLen      int
	}{
		{
			name:         "Success",
			status:       http.StatusOK,
			responseBody: `{"data":[{"embedding":[0.1,0.2,0.3],"index":0}],"model":"text-embedding-004"}`,
			wantLen:      3,
		},
		{
			name:         "Server error",
			status:       http.StatusInternalServerError,
			responseBody: `{"error":{"message":"boom"}}`,
			wantErr:      true,
		},
		{
			name:         "Empty data",
			status:       http.StatusOK,
			responseBody: `{"data":[],"model":"text-embedding-004"}`,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotBody map[string]any
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewDecoder(r.Body).Decode(&gotBody)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer srv.Close()

			client, err := NewClient(Config{APIKey: "test", BaseURL: srv.URL, Model: "text-embedding-004"})
			if err != nil {
				t.Fatalf("create client: %v", err)
			}

			vec, err := client.Embed(context.Background(), "feeling overwhelmed but hopeful")
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected err=%v, got %v", tt.wantErr, err)
			}
			if tt.wantErr {
				if !errors.Is(err, ports.ErrEmbedding) {
					t.Fatalf("expected a typed embedding error, got %v", err)
				}
				return
			}
			if len(vec) != tt.wantLen {
				t.Fatalf("expected %d dimensions, got %d", tt.wantLen, len(vec))
			}
			if gotBody["model"] != "text-embedding-004" {
				t.Fatalf("expected model in request, got %v", gotBody["model"])
			}
		})
	}
}

func TestNewClient_RequiresModel(t *testing.T) {
	if _, err := NewClient(Config{APIKey: "k"}); err == nil {
		t.Fatal("expected error for missing model")
	}
}
