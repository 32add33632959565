package version_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/lk16/draughts/internal/routes/version"
	"github.com/lk16/draughts/internal/tests"
	"github.com/stretchr/testify/require"
)

func TestVersionEndpoint(t *testing.T) {
	app, _ := tests.NewTestApp(t, 1)

	req, err := http.NewRequest(http.MethodGet, "/version", nil)
	require.NoError(t, err)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got version.VersionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, version.Version, got)
}
