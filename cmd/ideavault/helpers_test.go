package main

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/ideavault/internal/devserver"
)

// setupHome isolates config and preferences lookups from the developer's machine.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"IDEAVAULT_API_URL", "IDEAVAULT_API_TIMEOUT", "IDEAVAULT_LOG_LEVEL", "IDEAVAULT_LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	return home
}

func startBackend(t *testing.T, opts devserver.Options) (*devserver.Server, string) {
	t.Helper()
	srv, err := devserver.New(opts)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts.URL + "/api"
}

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
