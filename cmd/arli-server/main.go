// Command arli-server loads a preprocessed road graph and serves an
// OSRM-compatible routing API.
package main

import (
	"flag"
	"log"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"arli/pkg/api"
	"arli/pkg/graph"
	"arli/pkg/routing"
)

func main() {
	graphPath := flag.String("graph", "graph.bin", "Path to the preprocessed graph binary")
	addr := flag.String("addr", "127.0.0.1:5000", "HTTP listen address")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	start := time.Now()

	log.Printf("Loading graph from %s...", *graphPath)
	g, err := graph.ReadBinary(*graphPath)
	if err != nil {
		log.Fatalf("failed to load graph: %v", err)
	}
	log.Printf("Loaded: %d segments, %d edges", g.NumNodes(), g.NumEdges())

	engine := routing.NewEngine(g)

	// Load-time temporaries (the raw offset and edge arrays read from the
	// file, the CSR and spatial-index build scratch) are gone by now; give
	// them back to the OS rather
	// than let Go's heap hold onto peak RSS until the next GC cycle.
	runtime.GC()
	debug.FreeOSMemory()

	log.Printf("Ready in %s", time.Since(start).Round(time.Millisecond))

	cfg := api.DefaultConfig(*addr)
	cfg.CORSOrigin = *corsOrigin

	stats := api.StatsResponse{
		NumNodes: uint32(g.NumNodes()),
		NumEdges: g.NumEdges(),
	}

	handlers := api.NewHandlers(engine, stats)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("server stopped: %v", err)
		os.Exit(1)
	}
}
