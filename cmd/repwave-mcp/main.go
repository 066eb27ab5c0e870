package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/repwave/internal/catalog"
	"github.com/meltforce/repwave/internal/mcp"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", os.Getenv("REPWAVE_SERVER"), "RepWave server URL (e.g. https://repwave.tail1234.ts.net)")
	timezone := flag.String("timezone", "", "IANA timezone for day boundaries (default: system local)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("repwave-mcp", Version)
		return
	}

	// stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: repwave-mcp -server <URL> [-timezone <zone>]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	loc := time.Local
	if *timezone != "" {
		var err error
		loc, err = time.LoadLocation(*timezone)
		if err != nil {
			log.Error("invalid timezone", "timezone", *timezone, "error", err)
			os.Exit(1)
		}
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	ds := mcp.NewHTTPClient(*serverURL)
	srv := mcp.New(ds, cat, loc, Version, log)

	log.Info("RepWave MCP server starting", "server", *serverURL, "version", Version)
	if err := mcpserver.ServeStdio(srv); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
