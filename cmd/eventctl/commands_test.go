package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method, path, key string
	body              map[string]any
}

// fakeServer answers every request with status and the given envelope
func fakeServer(t *testing.T, status int, envelope string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var got []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{method: r.Method, path: r.URL.RequestURI(), key: r.Header.Get("X-API-Key")}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			require.NoError(t, json.Unmarshal(raw, &rec.body))
		}
		got = append(got, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(envelope))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func execute(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	jsonOutput = false
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--url", srv.URL, "--api-key", "secret"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestModifyPoints(t *testing.T) {
	srv, got := fakeServer(t, http.StatusOK, `{"success":true,"message":"Player 42 balance changed by -25.","data":{"balance":75}}`)

	out, err := execute(t, srv, "modify-points", "42", "--", "-25")
	require.NoError(t, err)
	assert.Contains(t, out, "balance changed by -25")

	require.Len(t, *got, 1)
	req := (*got)[0]
	assert.Equal(t, "POST", req.method)
	assert.Equal(t, "/api/v1/admin/points", req.path)
	assert.Equal(t, "secret", req.key)
	assert.Equal(t, float64(42), req.body["player_id"])
	assert.Equal(t, float64(-25), req.body["delta"])
}

func TestModifyPoints_RejectsZero(t *testing.T) {
	srv, got := fakeServer(t, http.StatusOK, `{}`)
	_, err := execute(t, srv, "modify-points", "42", "0")
	assert.Error(t, err)
	assert.Empty(t, *got)
}

func TestListEvents(t *testing.T) {
	data := []map[string]any{
		{"name": "Arena", "variant": "teamfight", "state": "Active", "enabled": true, "window": "18:00:00-20:00:00", "participants": 4, "remaining": int64(90 * time.Second)},
		{"name": "Hill", "variant": "zonecontrol", "state": "Idle", "enabled": false, "window": "12:00:00-14:00:00"},
	}
	raw, err := json.Marshal(map[string]any{"success": true, "message": "2 event(s)", "data": data})
	require.NoError(t, err)
	srv, _ := fakeServer(t, http.StatusOK, string(raw))

	out, err := execute(t, srv, "list-events")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Arena")
	assert.Contains(t, out, "1m30s")
	assert.Contains(t, out, "Idle (disabled)")
}

func TestStart_ServerError(t *testing.T) {
	srv, got := fakeServer(t, http.StatusNotFound, `{"success":false,"message":"Event not found."}`)

	_, err := execute(t, srv, "start", "Big Arena")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Event not found.")
	require.Len(t, *got, 1)
	assert.Equal(t, "/api/v1/admin/events/Big%20Arena/start", (*got)[0].path)
}
