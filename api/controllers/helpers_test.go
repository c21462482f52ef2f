package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/secondnest/api/middleware"
	"github.com/angelmondragon/secondnest/internal/catalog"
)

const testSession = "session-test-1"

func seedCatalog(t *testing.T) *catalog.MemoryStore {
	t.Helper()
	listings, err := catalog.DefaultListings()
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	return catalog.NewMemoryStore(listings)
}

// newRequest builds a session-scoped request and, when params are given, a chi
// route context carrying them.
func newRequest(method, target, body string, params map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	ctx := middleware.WithSessionID(req.Context(), testSession)
	if len(params) > 0 {
		rc := chi.NewRouteContext()
		for k, v := range params {
			rc.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rc)
	}
	return req.WithContext(ctx)
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder, dest any) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func decodeErrorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return payload.Error.Code
}

type failingState struct{ err error }

func (f failingState) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingState) Put(context.Context, string, []byte) error         { return f.err }
func (f failingState) Delete(context.Context, string) error              { return f.err }

func withOtherSession(r *http.Request) context.Context {
	return middleware.WithSessionID(r.Context(), "session-test-2")
}
