package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClientRequiresStoreIdentity(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"missing project", Config{Dataset: "production", APIVersion: "2026-01-01"}, ErrProjectRequired},
		{"missing dataset", Config{ProjectID: "p01ab", APIVersion: "2026-01-01"}, ErrDatasetRequired},
		{"missing api version", Config{ProjectID: "p01ab", Dataset: "production"}, ErrAPIVersionRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewClient(tc.cfg); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		ProjectID:  "p01ab",
		Dataset:    "production",
		APIVersion: "2026-01-01",
	}, WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestQueryDecodesResultEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got == "" {
			t.Error("expected query parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result": [{"slug": "folicur-ec", "name": "Folicur EC"}]}`))
	})

	var out []map[string]any
	if err := client.Query(context.Background(), ByType("product"), &out); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(out) != 1 || out[0]["slug"] != "folicur-ec" {
		t.Fatalf("unexpected result %v", out)
	}
}

func TestQueryEmptyResultIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": []}`))
	})

	var out []map[string]any
	if err := client.Query(context.Background(), ByType("product").WithSlug("unknown"), &out); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %v", out)
	}
}

func TestQueryStatusFailureSurfacesRequestError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	})

	err := client.Query(context.Background(), ByType("product"), nil)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", reqErr.StatusCode)
	}
}

func TestQueryMalformedBodySurfacesRequestError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": `))
	})

	var out []map[string]any
	err := client.Query(context.Background(), ByType("product"), &out)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
}

func TestQueryTimeoutSurfacesRequestError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"result": []}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := client.Query(ctx, ByType("product"), nil)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
}
