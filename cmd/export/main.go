package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/samirrijal/geowatch/internal/adapters/collector"
	"github.com/samirrijal/geowatch/internal/core/usecases"
	"github.com/samirrijal/geowatch/internal/pkg/config"
)

// export dumps an archived query's full tweet set as CSV, to a file or
// stdout. Useful for pulling data out without going through the API.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: export <query-id> [outfile]")
	}
	id := os.Args[1]

	cfg, err := config.Load("geowatch-export")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gateway := collector.New(cfg.Collector.BaseURL, time.Duration(cfg.Collector.Timeout)*time.Second)
	svc := usecases.NewExportService(gateway, nil)

	out := os.Stdout
	toFile := len(os.Args) > 2
	if toFile {
		f, err := os.Create(os.Args[2])
		if err != nil {
			log.Fatalf("create %s: %v", os.Args[2], err)
		}
		defer f.Close()
		out = f
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	name, err := svc.WriteCSV(ctx, id, out)
	if err != nil {
		log.Fatalf("export %s: %v", id, err)
	}
	if toFile {
		fmt.Fprintf(os.Stderr, "OK  %s -> %s\n", name, os.Args[2])
	}
}
