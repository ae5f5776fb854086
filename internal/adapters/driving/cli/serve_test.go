package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_AddrFlag(t *testing.T) {
	flag := serveCmd.Flags().Lookup("addr")

	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestServeCmd_LongListsEndpoints(t *testing.T) {
	for _, route := range []string{"/api/analyze", "/api/patterns", "/api/patterns/:id", "/healthz"} {
		assert.Contains(t, serveCmd.Long, route)
	}
}

func TestServeCmd_RequiresServices(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	catalogueService = nil

	err := runServe(serveCmd, nil)

	assert.EqualError(t, err, "analysis service not configured")
}
