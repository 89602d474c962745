package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jaennil/guide_helper/raster/internal/tilecoord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"layerctl", "--log-level", "error"}, args...))
	return out.String(), err
}

func TestTileCommand(t *testing.T) {
	out, err := runApp(t, "tile", "12", "3190", "1889")
	require.NoError(t, err)
	assert.Contains(t, out, "xyz 12/3190/1889 -> tms 12/3190/2206")
	assert.Contains(t, out, "bound: ")
}

func TestTileCommandRejectsOutOfRange(t *testing.T) {
	_, err := runApp(t, "--max-zoom", "18", "tile", "19", "0", "0")
	require.ErrorIs(t, err, tilecoord.ErrInvalidCoordinate)

	_, err = runApp(t, "tile", "3", "x", "0")
	require.ErrorIs(t, err, tilecoord.ErrInvalidCoordinate)
}

func TestArchiveCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"message":"got metadata","data":{"bounds":"100.1,13.5,100.9,14.0","minzoom":10}}`))
	}))
	defer srv.Close()

	out, err := runApp(t, "--tiles-url", srv.URL, "archive")
	require.NoError(t, err)
	assert.Contains(t, out, "minzoom: 10")
	assert.NotContains(t, out, "maxzoom")
	assert.Contains(t, out, "viewport: [13.5,100.1]-[14,100.9]")
}

func TestArchiveCommandMalformedBounds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"message":"got metadata","data":{"bounds":""}}`))
	}))
	defer srv.Close()

	out, err := runApp(t, "--tiles-url", srv.URL, "archive")
	require.NoError(t, err)
	assert.Contains(t, out, "viewport: not fitted")
}
