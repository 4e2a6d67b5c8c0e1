package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"QRBoxer/internal/config"
)

// withTempConfig redirects the user config dir to a temp location so
// token/login files never touch the real home directory.
func withTempConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir) // linux
	t.Setenv("APPDATA", dir)         // windows
	t.Setenv("HOME", dir)            // darwin fallback
}

// captureOut swaps the package output writer for a buffer.
func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	old := Out
	buf := &bytes.Buffer{}
	Out = buf
	t.Cleanup(func() { Out = old })
	return buf
}

// newFakeServer starts an httptest server and returns a client config
// pointing at it.
func newFakeServer(t *testing.T, handler http.Handler) (*httptest.Server, *config.Config) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, &config.Config{ServerURL: srv.URL}
}
