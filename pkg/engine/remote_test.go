package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRemoteClientGenerate(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/generate" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(generateResponse{TranslatedText: "Barka da safe"})
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, quietLogger())

	out, err := client.Generate(context.Background(), "Good morning", "en", "ha", 512, 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "Barka da safe" {
		t.Errorf("Generate = %q, want %q", out, "Barka da safe")
	}

	want := generateRequest{
		Text:       "Good morning",
		SourceLang: "en",
		TargetLang: "ha",
		MaxLength:  512,
		NumBeams:   5,
	}
	if got != want {
		t.Errorf("server saw %+v, want %+v", got, want)
	}
}

func TestRemoteClientGenerateNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, quietLogger())

	if _, err := client.Generate(context.Background(), "hi", "en", "ha", 512, 5); err == nil {
		t.Error("Generate should surface a non-OK status as an error")
	}
}

func TestRemoteClientGenerateBadResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, quietLogger())

	if _, err := client.Generate(context.Background(), "hi", "en", "ha", 512, 5); err == nil {
		t.Error("Generate should fail on an undecodable response")
	}
}

func TestRemoteClientCheckHealth(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"healthy", http.StatusOK, false},
		{"server error", http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/model/info" {
					t.Errorf("health check hit %s, want /model/info", r.URL.Path)
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := NewRemoteClient(srv.URL, quietLogger())
			err := client.CheckHealth(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckHealth error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRemoteClientModelInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"model_type": "T5ForConditionalGeneration",
			"max_length": 512,
		})
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, quietLogger())

	info, err := client.ModelInfo(context.Background())
	if err != nil {
		t.Fatalf("ModelInfo: %v", err)
	}
	if info["model_type"] != "T5ForConditionalGeneration" {
		t.Errorf("model_type = %v", info["model_type"])
	}
}

func TestNewRemoteClientDefaultURL(t *testing.T) {
	client := NewRemoteClient("", nil)
	if client.baseURL != DefaultRemoteURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultRemoteURL)
	}
}
