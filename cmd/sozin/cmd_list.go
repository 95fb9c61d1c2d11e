package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/hsylva/sozin/internal/link"
	"github.com/hsylva/sozin/pkg/models"
)

func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	wireless := fs.Bool("wireless", false, "show only wireless interfaces")
	asJSON := fs.Bool("json", false, "output as JSON")
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	_, logger := setup(*configPath)
	defer func() { _ = logger.Sync() }()

	mgr := link.NewManager(link.NewSysProvider(link.NewRunner()), logger)

	ctx := context.Background()
	var records []models.InterfaceRecord
	var err error
	if *wireless {
		records, err = mgr.WirelessInterfaces(ctx)
	} else {
		records, err = mgr.Interfaces(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list interfaces: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		printJSON(records)
		return
	}

	for _, rec := range records {
		extra := rec.MACAddress
		if rec.IPAddress != "" {
			extra += "  " + rec.IPAddress
		}
		fmt.Printf("  %-12s %-8s %-10s %s\n", rec.Name, rec.State, rec.Kind, extra)
	}
	fmt.Printf("\n  %d interfaces found\n", len(records))
}

// printJSON writes v to stdout as indented JSON, preserving slice order.
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode JSON: %v\n", err)
		os.Exit(1)
	}
}
