package ledboard

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/theoremus-urban-solutions/gtfsrt-led-board/config"
)

// StartServer starts the status API in the background and returns the
// server so the caller can shut it down.
func StartServer(snap *Snapshot) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handleHealth(snap))
	mux.HandleFunc("/api/stations", handleStations(snap))
	mux.HandleFunc("/api/stations/", handleStation(snap))

	handler := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet},
	}).Handler(mux)

	addr := fmt.Sprintf(":%d", config.Config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("status server listening on %s", addr)
	return server
}
