package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hsylva/sozin/internal/history"
	"github.com/hsylva/sozin/internal/wifiscan"
	"github.com/hsylva/sozin/pkg/models"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func runScan(args []string) {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	iface := fs.String("i", "", "interface to scan with (required)")
	asJSON := fs.Bool("json", false, "output as JSON")
	save := fs.Bool("save", false, "save results to the scan history database")
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *iface == "" {
		fmt.Fprintln(os.Stderr, "scan: -i <interface> is required")
		os.Exit(2)
	}

	cfg, logger := setup(*configPath)
	defer func() { _ = logger.Sync() }()
	warnIfNotRoot()

	scanner := newScanner(cfg, *iface, logger)

	ctx := context.Background()
	networks, err := scanner.Scan(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if *save {
		store, err := history.Open(cfg.GetString("history.path"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open history: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		id, err := store.SaveScan(ctx, *iface, networks)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to save scan: %v\n", err)
			os.Exit(1)
		}
		logger.Info("scan saved", zap.String("session", id))
	}

	if *asJSON {
		printJSON(networks)
		return
	}
	printNetworks(networks)
}

func runWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	iface := fs.String("i", "", "interface to scan with (required)")
	interval := fs.Duration("interval", 0, "time between scans (overrides config)")
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *iface == "" {
		fmt.Fprintln(os.Stderr, "watch: -i <interface> is required")
		os.Exit(2)
	}

	cfg, logger := setup(*configPath)
	defer func() { _ = logger.Sync() }()
	warnIfNotRoot()

	every := cfg.GetDuration("watch.interval")
	if *interval > 0 {
		every = *interval
	}

	scanner := newScanner(cfg, *iface, logger)
	watcher := wifiscan.NewWatcher(scanner, every, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := watcher.Run(ctx, func(networks []models.WifiNetworkRecord) {
		fmt.Printf("\n--- %d networks ---\n", len(networks))
		printNetworks(networks)
	})
	if err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func runHistory(args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	session := fs.String("session", "", "show networks for one session ID")
	limit := fs.Int("limit", 20, "number of sessions to list")
	asJSON := fs.Bool("json", false, "output as JSON")
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, logger := setup(*configPath)
	defer func() { _ = logger.Sync() }()

	store, err := history.Open(cfg.GetString("history.path"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	if *session != "" {
		networks, err := store.SessionNetworks(ctx, *session)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		if *asJSON {
			printJSON(networks)
			return
		}
		printNetworks(networks)
		return
	}

	sessions, err := store.ListSessions(ctx, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *asJSON {
		printJSON(sessions)
		return
	}
	for _, s := range sessions {
		fmt.Printf("  %s  %-12s %s  %d networks\n",
			s.ID, s.Interface, s.StartedAt.Local().Format("2006-01-02 15:04:05"), s.Total)
	}
}

// newScanner picks the scan backend from configuration. The iw text parser
// is the default; nl80211 talks to the kernel directly on Linux.
func newScanner(cfg *viper.Viper, iface string, logger *zap.Logger) wifiscan.NetworkScanner {
	if cfg.GetString("scan.backend") == "nl80211" {
		return wifiscan.NewNL80211Scanner(iface, logger)
	}
	return wifiscan.NewScanner(iface, wifiscan.IWSource{}, cfg.GetDuration("scan.timeout"), logger)
}

func printNetworks(networks []models.WifiNetworkRecord) {
	fmt.Printf("  %-25s %-18s %4s %8s %6s  %s\n", "SSID", "BSSID", "CH", "SIGNAL", "", "SECURITY")
	for _, n := range networks {
		ssid := n.SSID
		if len(ssid) > 24 {
			ssid = ssid[:21] + "..."
		}
		fmt.Printf("  %-25s %-18s %4d %5ddBm %6s  %s\n",
			ssid, n.BSSID, n.Channel, n.SignalStrength, wifiscan.Bars(n.SignalStrength), n.Security)
	}
}
