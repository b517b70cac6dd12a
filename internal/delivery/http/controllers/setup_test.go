package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"orgcalendar/internal/delivery/http/middleware"
	"orgcalendar/internal/domain"

	"github.com/stretchr/testify/require"
)

var (
	testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

	asUser      = domain.Principal{ID: "11111111-1111-4111-8111-111111111111", Role: domain.RoleUser, IsActive: true}
	asMember    = domain.Principal{ID: "22222222-2222-4222-8222-222222222222", Role: domain.RoleMember, IsActive: true}
	asSecretary = domain.Principal{ID: "33333333-3333-4333-8333-333333333333", Role: domain.RoleSecretary, IsActive: true}
)

// newRequest builds a request carrying p (unless nil) and the optional id path value.
func newRequest(method, target string, body any, p *domain.Principal, id string) *http.Request {
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, "http://test"+target, rdr)
	if p != nil {
		req = req.WithContext(middleware.SetPrincipal(req.Context(), *p))
	}
	if id != "" {
		req.SetPathValue("id", id)
	}
	return req
}

type envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Count   *int                `json:"count"`
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Errors  []domain.FieldError `json:"errors"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var env envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

func requireError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) envelope {
	t.Helper()
	require.Equal(t, status, rr.Code)
	env := decode(t, rr)
	require.False(t, env.Success)
	require.Equal(t, code, env.Code)
	return env
}

