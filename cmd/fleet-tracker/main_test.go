package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/gtfsrt"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/tracking"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/utils"
)

func writeFeed(t *testing.T) string {
	t.Helper()
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	records := []tracking.Record{
		{TruckID: "truck-2", Position: utils.Coordinate{Lat: 6.6, Lng: 3.5}, Status: tracking.StatusArrived, CoveredKM: 15, LastUpdate: now},
		{TruckID: "truck-1", Position: utils.Coordinate{Lat: 6.5, Lng: 3.4}, SpeedKMH: 54, HeadingDeg: 45, CoveredKM: 2.5, Status: tracking.StatusTracking, LastUpdate: now},
	}
	data, err := gtfsrt.MarshalFeed(gtfsrt.BuildVehiclePositionsFeed(records, "LFD", now))
	require.NoError(t, err)
	p := filepath.Join(t.TempDir(), "vehicle-positions.pb")
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestDumpFeed_File(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, dumpFeed(&out, writeFeed(t)))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "2025-03-01T08:00:00Z")
	assert.True(t, strings.HasPrefix(lines[2], "truck-1"))
	assert.Contains(t, lines[2], "in transit")
	assert.Contains(t, lines[2], "54.0")
	assert.Contains(t, lines[2], "2.50")
	assert.True(t, strings.HasPrefix(lines[3], "truck-2"))
	assert.Contains(t, lines[3], "stopped")
}

func TestDumpFeed_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, dumpFeed(&out, filepath.Join(t.TempDir(), "missing.pb")), os.ErrNotExist)

	garbage := filepath.Join(t.TempDir(), "garbage.pb")
	require.NoError(t, os.WriteFile(garbage, []byte{0xff, 0xff, 0xff}, 0o644))
	assert.Error(t, dumpFeed(&out, garbage))
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 16181, cfg.Server.Port)

	_, err = loadConfig("nope.yml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
