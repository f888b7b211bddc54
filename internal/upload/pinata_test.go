package upload

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
)

func TestPinataClient_Upload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pinning/pinFileToIPFS" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("pinata_api_key") != "key" {
			t.Errorf("missing api key header")
		}
		if r.Header.Get("pinata_secret_api_key") != "secret" {
			t.Errorf("missing api secret header")
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("expected multipart content type, got %s", r.Header.Get("Content-Type"))
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if _, ok := r.MultipartForm.File["file"]; !ok {
			t.Error("missing file field")
		}

		json.NewEncoder(w).Encode(pinResponse{IpfsHash: "Qm123", PinSize: 2048})
	}))
	defer server.Close()

	client := NewPinataClient("key", "secret", WithBaseURL(server.URL))
	ref, err := client.Upload(context.Background(), []byte("png-bytes"), "logo.png")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if ref.Origin != domain.OriginRemotePinned {
		t.Errorf("expected origin %s, got %s", domain.OriginRemotePinned, ref.Origin)
	}
	if !strings.Contains(ref.URI, "Qm123") {
		t.Errorf("expected URI to contain CID, got %s", ref.URI)
	}
}

func TestPinataClient_Upload_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewPinataClient("key", "secret", WithBaseURL(server.URL))
	_, err := client.Upload(context.Background(), []byte("png-bytes"), "logo.png")

	var upErr *Error
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if upErr.Stage != StagePin {
		t.Errorf("expected stage %s, got %s", StagePin, upErr.Stage)
	}
}

func TestPinataClient_Upload_MissingCredentials(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewPinataClient("", "", WithBaseURL(server.URL))
	_, err := client.Upload(context.Background(), []byte("png-bytes"), "logo.png")

	var upErr *Error
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if upErr.Stage != StagePin {
		t.Errorf("expected stage %s, got %s", StagePin, upErr.Stage)
	}
	if called {
		t.Error("expected no HTTP call without credentials")
	}
}

func TestPinataClient_Upload_EmptyAsset(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewPinataClient("key", "secret", WithBaseURL(server.URL))
	_, err := client.Upload(context.Background(), nil, "logo.png")

	var upErr *Error
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if called {
		t.Error("expected no HTTP call for empty asset")
	}
}

func TestPinataClient_Upload_MissingCID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(pinResponse{})
	}))
	defer server.Close()

	client := NewPinataClient("key", "secret", WithBaseURL(server.URL))
	_, err := client.Upload(context.Background(), []byte("png-bytes"), "logo.png")
	if err == nil {
		t.Fatal("expected error for response without CID")
	}
}

func TestPinataClient_TestAuthentication(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/testAuthentication" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("pinata_api_key") != "key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"message":"Congratulations! You are communicating with the Pinata API!"}`))
	}))
	defer server.Close()

	client := NewPinataClient("key", "secret", WithBaseURL(server.URL))
	if err := client.TestAuthentication(context.Background()); err != nil {
		t.Errorf("TestAuthentication failed: %v", err)
	}

	bad := NewPinataClient("wrong", "secret", WithBaseURL(server.URL))
	if err := bad.TestAuthentication(context.Background()); err == nil {
		t.Error("expected error for invalid credentials")
	}
}
