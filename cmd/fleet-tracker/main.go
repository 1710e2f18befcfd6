package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	fleettrack "github.com/TradeStacksInc/sleek-purchase-order-genius-sub001"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/config"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/gtfsrt"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/store"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/tracking"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/utils"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (default: search config.yml, ./config/config.yml)")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	quiet := flag.Bool("quiet", false, "suppress per-truck engine logs")
	dump := flag.String("dump", "", "print the vehicles of a GTFS-RT VehiclePositions feed (URL or file) and exit")
	flag.Parse()

	fleettrack.InitLogging(*quiet)

	if *dump != "" {
		if err := dumpFeed(os.Stdout, *dump); err != nil {
			log.Fatalf("dump %s: %v", *dump, err)
		}
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	var db *store.DB
	if cfg.Store.Path != "" {
		db, err = store.Open(cfg.Store.Path)
		if err != nil {
			log.Fatalf("store: %v", err)
		}
		if err := db.MigrateUp(); err != nil {
			log.Fatalf("store migrations: %v", err)
		}
	}

	engine := tracking.NewEngine(cfg.EngineConfig())
	if db != nil {
		store.NewRecorder(db, 0).Attach(engine)
	}
	startFleet(engine, cfg.Fleet)

	srv := fleettrack.NewServer(engine, db, cfg)
	if err := srv.Start(); err != nil {
		log.Fatalf("server: %v", err)
	}

	fleettrack.WaitForSignal()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("%v", err)
	}
	engine.Close()
	if err := db.Close(); err != nil {
		log.Printf("store close: %v", err)
	}
}

// loadConfig reads path, or the default locations when path is empty. A
// missing default file is not an error: built-in defaults are used.
func loadConfig(path string) (config.AppConfig, error) {
	if path != "" {
		return config.LoadAppConfig(path)
	}
	cfg, err := config.LoadAppConfig()
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("no config file found, using defaults")
		return config.Parse(nil)
	}
	return cfg, err
}

func startFleet(e *tracking.Engine, fleet config.FleetConfig) {
	for _, t := range fleet.Trucks {
		origin, err := config.ParseCoordinate(t.Origin)
		if err != nil {
			log.Printf("skipping truck %s: %v", t.ID, err)
			continue
		}
		opts, err := t.StartOptions()
		if err != nil {
			log.Printf("skipping truck %s: %v", t.ID, err)
			continue
		}
		if _, err := e.StartTracking(t.ID, origin, t.DistanceKM, opts); err != nil {
			log.Printf("start %s: %v", t.ID, err)
		}
	}
	log.Printf("started %d configured trucks", len(e.TrackedIDs()))
}

func dumpFeed(out io.Writer, urlOrPath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	w, err := newFetcher(20*time.Second).fetch(ctx, urlOrPath)
	if err != nil {
		return err
	}
	return printVehicles(out, w)
}

func printVehicles(out io.Writer, w *gtfsrt.Wrapper) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "feed timestamp: %s\n", utils.Iso8601FromTime(w.GetTimestampForFeedMessage()))
	fmt.Fprintln(tw, "VEHICLE\tLABEL\tPOSITION\tBEARING\tSPEED KM/H\tODOMETER KM\tSTATUS")
	for _, v := range w.Vehicles() {
		status := "in transit"
		if v.StoppedAt {
			status = "stopped"
		}
		pos := utils.Coordinate{Lat: v.Latitude, Lng: v.Longitude}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f\t%.1f\t%.2f\t%s\n",
			v.VehicleID, v.Label, pos, v.BearingDeg, v.SpeedMS*3.6, v.OdometerM/utils.MetersPerKM, status)
	}
	return tw.Flush()
}
