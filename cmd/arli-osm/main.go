// Command arli-osm imports an OSM PBF extract into the binary road graph
// format arli-server loads at startup.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"arli/pkg/graph"
	"arli/pkg/osmimport"
)

func main() {
	input := flag.String("input", "", "Path to .osm.pbf file")
	output := flag.String("output", "graph.bin", "Output binary graph file path")
	bbox := flag.String("bbox", "", "Bounding box filter: minLat,minLng,maxLat,maxLng (e.g. 1.15,103.6,1.48,104.1)")
	singapore := flag.Bool("singapore", false, "Shortcut for --bbox 1.15,103.6,1.48,104.1 (Singapore bounding box)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: arli-osm --input <file.osm.pbf> [--output graph.bin] [--singapore | --bbox minLat,minLng,maxLat,maxLng]")
		os.Exit(1)
	}

	var opts osmimport.Options
	if *singapore {
		opts.BBox = osmimport.BBox{MinLat: 1.15, MaxLat: 1.48, MinLng: 103.6, MaxLng: 104.1}
		log.Println("Using Singapore bounding box filter: lat [1.15, 1.48], lng [103.6, 104.1]")
	} else if *bbox != "" {
		var minLat, minLng, maxLat, maxLng float64
		if _, err := fmt.Sscanf(*bbox, "%f,%f,%f,%f", &minLat, &minLng, &maxLat, &maxLng); err != nil {
			log.Fatalf("invalid bbox format (expected minLat,minLng,maxLat,maxLng): %v", err)
		}
		opts.BBox = osmimport.BBox{MinLat: minLat, MaxLat: maxLat, MinLng: minLng, MaxLng: maxLng}
		log.Printf("Using bounding box filter: lat [%.4f, %.4f], lng [%.4f, %.4f]", minLat, maxLat, minLng, maxLng)
	}

	start := time.Now()

	log.Println("Opening OSM file...")
	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("failed to open input file: %v", err)
	}
	defer f.Close()

	log.Println("Reading and splitting ways...")
	edges, err := osmimport.ReadEdges(context.Background(), f, opts)
	if err != nil {
		log.Fatalf("failed to read OSM data: %v", err)
	}

	log.Println("Building graph...")
	g := osmimport.Build(edges)
	log.Printf("Graph: %d segments, %d edges", g.NumNodes(), g.NumEdges())

	log.Printf("Writing binary to %s...", *output)
	if err := graph.WriteBinary(*output, g); err != nil {
		log.Fatalf("failed to write binary: %v", err)
	}

	info, _ := os.Stat(*output)
	elapsed := time.Since(start)
	log.Printf("Done in %s. Output: %s (%.1f MB)", elapsed.Round(time.Second), *output, float64(info.Size())/(1024*1024))
}
