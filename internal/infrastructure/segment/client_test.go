package segment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientSegment(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected authorization header %q", got)
		}

		var payload struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload.Text != "ngân hàng tăng trưởng" {
			t.Errorf("unexpected text %q", payload.Text)
		}

		_ = json.NewEncoder(w).Encode(map[string]string{
			"segmented_text": "ngân_hàng tăng_trưởng",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	got, err := client.Segment(context.Background(), "ngân hàng tăng trưởng")
	if err != nil {
		t.Fatalf("Segment error: %v", err)
	}
	if got != "ngân_hàng tăng_trưởng" {
		t.Fatalf("unexpected segmentation: %q", got)
	}
}

func TestClientSegmentServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if _, err := client.Segment(context.Background(), "văn bản"); err == nil {
		t.Fatal("expected an error for a 502 response")
	}
}

func TestPassthrough(t *testing.T) {
	t.Parallel()

	got, err := Passthrough{}.Segment(context.Background(), "giữ nguyên văn bản")
	if err != nil || got != "giữ nguyên văn bản" {
		t.Fatalf("passthrough must return input unchanged, got %q %v", got, err)
	}
}
