package strategy

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/1ureka/salvo/internal/board"
)

func TestParseSuggestion(t *testing.T) {
	testCases := []struct {
		output string
		want   board.Coordinate
	}{
		{"B7", board.At(7, 2)},
		{"  c10\n", board.At(10, 3)},
		{"I'd go with D4.", board.At(4, 4)},
		{"", Fallback},
		{"no idea", Fallback},
		{"A0", Fallback},
	}

	for _, tc := range testCases {
		if got := ParseSuggestion(tc.output); got != tc.want {
			t.Errorf("ParseSuggestion(%q) = %v, want %v", tc.output, got, tc.want)
		}
	}
}

func TestRandomAvoidsPastAttacks(t *testing.T) {
	r := NewRandom(rand.New(rand.NewPCG(3, 4)))

	// Leave exactly one free cell on a 3x3 grid.
	past := []string{"A1", "A2", "A3", "B1", "B3", "C1", "C2", "C3"}
	for i := 0; i < 20; i++ {
		got, err := r.SuggestNextAttack(context.Background(), 3, past)
		if err != nil {
			t.Fatalf("SuggestNextAttack failed: %v", err)
		}
		if got != board.At(2, 2) {
			t.Fatalf("got %v, want the only free cell B2", got)
		}
	}

	if _, err := r.SuggestNextAttack(context.Background(), 3, append(past, "B2")); err == nil {
		t.Fatal("expected an error on a fully attacked grid")
	}
}

func TestRandomStaysOnGrid(t *testing.T) {
	r := NewRandom(rand.New(rand.NewPCG(1, 1)))
	for i := 0; i < 200; i++ {
		got, err := r.SuggestNextAttack(context.Background(), 8, nil)
		if err != nil {
			t.Fatalf("SuggestNextAttack failed: %v", err)
		}
		if !got.In(8) {
			t.Fatalf("suggestion %+v outside 8x8", got)
		}
	}
}

func TestModelSuggestNextAttack(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"output":[{"content":[{"type":"output_text","text":"E5"}]}]}`))
	}))
	defer srv.Close()

	m := NewModel(ModelConfig{ResponsesURL: srv.URL, APIKey: "sk-test", Model: "gpt-test"})
	got, err := m.SuggestNextAttack(context.Background(), 10, []string{"A1", "B2"})
	if err != nil {
		t.Fatalf("SuggestNextAttack failed: %v", err)
	}
	if got != board.At(5, 5) {
		t.Fatalf("got %v, want E5", got)
	}

	if gotBody["model"] != "gpt-test" {
		t.Errorf("model = %q, want gpt-test", gotBody["model"])
	}
	if !strings.Contains(gotBody["input"], "10x10") || !strings.Contains(gotBody["input"], "(A1,B2)") {
		t.Errorf("prompt missing grid size or past moves:\n%s", gotBody["input"])
	}
}

func TestModelMalformedOutputFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"output_text":"I cannot help with that"}`))
	}))
	defer srv.Close()

	m := NewModel(ModelConfig{ResponsesURL: srv.URL, APIKey: "k", Model: "m"})
	got, err := m.SuggestNextAttack(context.Background(), 10, nil)
	if err != nil {
		t.Fatalf("SuggestNextAttack failed: %v", err)
	}
	if got != Fallback {
		t.Fatalf("got %v, want fallback %v", got, Fallback)
	}
}

func TestModelProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	m := NewModel(ModelConfig{ResponsesURL: srv.URL, APIKey: "k", Model: "m"})
	_, err := m.SuggestNextAttack(context.Background(), 10, nil)
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status 429 error, got %v", err)
	}

	if _, err := NewModel(ModelConfig{Model: "m"}).SuggestNextAttack(context.Background(), 10, nil); err == nil {
		t.Fatal("expected an error without an api key")
	}
}
