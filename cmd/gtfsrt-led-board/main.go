package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	lib "github.com/theoremus-urban-solutions/gtfsrt-led-board"
	"github.com/theoremus-urban-solutions/gtfsrt-led-board/config"
	"github.com/theoremus-urban-solutions/gtfsrt-led-board/feed"
	"github.com/theoremus-urban-solutions/gtfsrt-led-board/stations"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml")
	stopsPath := flag.String("stops", "", "stops.txt path (overrides config)")
	complexesPath := flag.String("complexes", "", "station complexes CSV path (overrides config)")
	layoutPath := flag.String("layout", "", "LED layout CSV path (overrides config)")
	serialPort := flag.String("port", "", "serial port (overrides config)")
	baud := flag.Int("baud", 0, "serial baud rate (overrides config)")
	poll := flag.Int("poll", 0, "poll interval in ms (overrides config)")
	testMode := flag.Bool("test", false, "console preview instead of a serial board")
	http1 := flag.Bool("http1", false, "fetch over HTTP/1.1 only, skipping HTTP/2")
	verbose := flag.Bool("verbose", false, "print the station preview after every cycle")
	flag.Parse()

	_ = godotenv.Load()
	lib.InitLogging()

	var paths []string
	if *configPath != "" {
		paths = append(paths, *configPath)
	}
	if err := config.LoadAppConfig(paths...); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := &config.Config
	if *stopsPath != "" {
		cfg.Data.StopsPath = *stopsPath
	}
	if *complexesPath != "" {
		cfg.Data.ComplexesPath = *complexesPath
	}
	if *layoutPath != "" {
		cfg.Data.LayoutPath = *layoutPath
	}
	if *serialPort != "" {
		cfg.Serial.Port = *serialPort
	}
	if *baud > 0 {
		cfg.Serial.Baud = *baud
	}
	if *poll > 0 {
		cfg.Feeds.PollIntervalMS = *poll
	}

	index, err := stations.LoadIndexCached(cfg.Data.StopsPath, cfg.Data.ComplexesPath, cfg.Data.CachePath)
	if err != nil {
		log.Fatalf("failed to load station index: %v", err)
	}
	layout, err := stations.LoadLayout(cfg.Data.LayoutPath)
	if err != nil {
		log.Fatalf("failed to load LED layout: %v", err)
	}
	log.Printf("loaded %d stations, %d LED positions", index.StationCount(), len(layout))

	sources := make([]feed.Source, len(cfg.Feeds.Sources))
	for i, s := range cfg.Feeds.Sources {
		sources[i] = feed.Source{Name: s.Name, URL: s.URL}
	}
	opts := feed.Options{
		ConnectTimeout: cfg.Feeds.ConnectTimeout(),
		ReadTimeout:    cfg.Feeds.ReadTimeout(),
		APIKey:         cfg.APIKey,
	}
	var primary, fallback feed.Strategy
	if *http1 {
		primary = feed.NewHTTP1Strategy(opts)
	} else {
		primary = feed.NewHTTP2Strategy(opts)
		fallback = feed.NewHTTP1Strategy(opts)
	}

	var transport lib.Transport
	if !*testMode && cfg.Serial.Port != "" {
		transport = lib.NewSerialTransport(cfg.Serial.Port, cfg.Serial.Baud)
		defer transport.Close()
	}

	snap := lib.NewSnapshot()
	var afterCycle func(lib.CycleStats)
	if *testMode || *verbose {
		afterCycle = func(lib.CycleStats) { lib.WritePreview(os.Stdout, snap) }
	}
	driver := lib.NewDriver(lib.DriverOptions{
		Index:           index,
		Layout:          layout,
		Cache:           feed.NewSourceCache(sources, cfg.Feeds.MinFetchInterval()),
		Strategy:        primary,
		Fallback:        fallback,
		Transport:       transport,
		SendEmptyFrames: cfg.Board.SendEmpty(),
		Period:          cfg.Feeds.PollInterval(),
		Snapshot:        snap,
		AfterCycle:      afterCycle,
	})

	server := lib.StartServer(snap)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := driver.Run(ctx); err != nil && err != context.Canceled {
		log.Printf("driver stopped: %v", err)
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		log.Printf("server shutdown error: %v", err)
	}
}
