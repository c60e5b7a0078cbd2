package bunny

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		StorageEndpoint: server.URL,
		StorageZone:     "amara-media",
		AccessKey:       "test-key",
		PullZoneURL:     "https://cdn.amara.example",
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestUploadPutsObjectAndReportsSize(t *testing.T) {
	var gotPath, gotKey, gotType string
	var gotBody []byte

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("unexpected method %s", r.Method)
		}
		gotPath = r.URL.Path
		gotKey = r.Header.Get("AccessKey")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	})

	stored, err := client.Upload(context.Background(), "products/serum.webp", "image/webp", strings.NewReader("webp-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if gotPath != "/amara-media/products/serum.webp" {
		t.Fatalf("unexpected storage path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("unexpected access key %q", gotKey)
	}
	if gotType != "image/webp" {
		t.Fatalf("unexpected content type %q", gotType)
	}
	if string(gotBody) != "webp-bytes" {
		t.Fatalf("unexpected body %q", gotBody)
	}
	if stored.Size != int64(len("webp-bytes")) {
		t.Fatalf("unexpected size %d", stored.Size)
	}
	if stored.PublicURL != "https://cdn.amara.example/products/serum.webp" {
		t.Fatalf("unexpected public url %q", stored.PublicURL)
	}
}

func TestUploadRejectsUnexpectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := client.Upload(context.Background(), "x.png", "image/png", strings.NewReader("x")); err == nil {
		t.Fatal("expected upload error")
	}
}

func TestDeleteMapsMissingObject(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("unexpected method %s", r.Method)
		}
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.Delete(context.Background(), "gone.png")
	if !errors.Is(err, interfaces.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestDeleteSucceeds(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if err := client.Delete(context.Background(), "x.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
