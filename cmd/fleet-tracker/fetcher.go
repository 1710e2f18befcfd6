package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/gtfsrt"
)

// fetcher reads a GTFS-RT VehiclePositions feed from a URL or a local file.
type fetcher struct {
	client *gtfsrt.Client
}

func newFetcher(timeout time.Duration) *fetcher {
	return &fetcher{client: gtfsrt.NewClient(timeout)}
}

// fetch returns the decoded feed at urlOrPath. Anything that is not an http(s)
// URL is read from disk.
func (f *fetcher) fetch(ctx context.Context, urlOrPath string) (*gtfsrt.Wrapper, error) {
	if strings.HasPrefix(urlOrPath, "http://") || strings.HasPrefix(urlOrPath, "https://") {
		return f.client.FetchVehicles(ctx, urlOrPath)
	}
	data, err := os.ReadFile(urlOrPath)
	if err != nil {
		return nil, err
	}
	w := gtfsrt.NewWrapper()
	if err := w.Load(data); err != nil {
		return nil, fmt.Errorf("%s: %w", urlOrPath, err)
	}
	return w, nil
}
