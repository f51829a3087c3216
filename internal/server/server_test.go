package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/zazencodes/zazenbot5k-go/internal/domain"
)

type fakeAnswerer struct {
	response  string
	err       error
	questions []domain.Question
}

func (f *fakeAnswerer) Answer(_ context.Context, q domain.Question) (string, error) {
	f.questions = append(f.questions, q)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestServer(answerer Answerer) *Server {
	return New("127.0.0.1:0", answerer, zap.NewNop())
}

func postQuery(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleQuerySuccess(t *testing.T) {
	answerer := &fakeAnswerer{response: "the answer\n🍿Source video:\nEp 1\nhttps://youtu.be/abc?t=750s"}
	s := newTestServer(answerer)

	rec := postQuery(t, s, `{"question": "what's the main point"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected plain-text response, got %q", ct)
	}
	if rec.Body.String() != answerer.response {
		t.Errorf("unexpected body: %q", rec.Body.String())
	}
	if len(answerer.questions) != 1 || answerer.questions[0].Text != "what's the main point" {
		t.Errorf("unexpected forwarded question: %+v", answerer.questions)
	}
}

func TestHandleQueryWithPersona(t *testing.T) {
	answerer := &fakeAnswerer{response: "ok"}
	s := newTestServer(answerer)

	rec := postQuery(t, s, `{"question": "q", "persona": "politician"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if answerer.questions[0].Persona != domain.PersonaPolitician {
		t.Errorf("expected persona forwarded, got %q", answerer.questions[0].Persona)
	}
}

func TestHandleQueryUnknownPersona(t *testing.T) {
	s := newTestServer(&fakeAnswerer{response: "ok"})

	rec := postQuery(t, s, `{"question": "q", "persona": "pirate"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleQueryBadBody(t *testing.T) {
	s := newTestServer(&fakeAnswerer{})

	for _, body := range []string{`{not json`, `{"question": ""}`, `{"question": "   "}`} {
		rec := postQuery(t, s, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestHandleQueryPipelineFailure(t *testing.T) {
	s := newTestServer(&fakeAnswerer{err: errors.New("rag retrieval failed: vertex unreachable")})

	rec := postQuery(t, s, `{"question": "q"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	if !strings.Contains(resp.Detail, "vertex unreachable") {
		t.Errorf("expected original message in detail, got %q", resp.Detail)
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&fakeAnswerer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("health body is not JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("unexpected health payload: %v", body)
	}
}
