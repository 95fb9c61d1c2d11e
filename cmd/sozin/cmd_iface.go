package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hsylva/sozin/internal/link"
	"go.uber.org/zap"
)

// newController builds a Controller plus logger for a control subcommand.
func newController(configPath string) (*link.Controller, *zap.Logger) {
	_, logger := setup(configPath)
	warnIfNotRoot()
	return link.NewController(link.NewRunner(), logger), logger
}

func runMode(args []string) {
	fs := flag.NewFlagSet("mode", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	iface := fs.Arg(0)
	if iface == "" {
		fmt.Fprintln(os.Stderr, "mode: interface name is required")
		os.Exit(2)
	}

	_, logger := setup(*configPath)
	defer func() { _ = logger.Sync() }()

	mgr := link.NewManager(link.NewSysProvider(link.NewRunner()), logger)
	fmt.Println(mgr.Mode(context.Background(), iface))
}

func runMonitor(args []string) {
	fs := flag.NewFlagSet("monitor", flag.ExitOnError)
	disable := fs.Bool("disable", false, "disable monitor mode (restore managed)")
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	iface := fs.Arg(0)
	if iface == "" {
		fmt.Fprintln(os.Stderr, "monitor: interface name is required")
		os.Exit(2)
	}

	ctl, logger := newController(*configPath)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	if *disable {
		if err := ctl.DisableMonitorMode(ctx, iface); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s is back in managed mode\n", iface)
		return
	}
	if err := ctl.EnableMonitorMode(ctx, iface); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s is now in monitor mode\n", iface)
}

func runUpDown(args []string, up bool) {
	name := "down"
	if up {
		name = "up"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	iface := fs.Arg(0)
	if iface == "" {
		fmt.Fprintf(os.Stderr, "%s: interface name is required\n", name)
		os.Exit(2)
	}

	ctl, logger := newController(*configPath)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	var err error
	if up {
		err = ctl.BringUp(ctx, iface)
	} else {
		err = ctl.BringDown(ctx, iface)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s is now %s\n", iface, name)
}

func runMac(args []string) {
	fs := flag.NewFlagSet("mac", flag.ExitOnError)
	address := fs.String("address", "", "new MAC address (random if not given)")
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	iface := fs.Arg(0)
	if iface == "" {
		fmt.Fprintln(os.Stderr, "mac: interface name is required")
		os.Exit(2)
	}

	mac := *address
	if mac == "" {
		mac = link.RandomMAC()
	}

	ctl, logger := newController(*configPath)
	defer func() { _ = logger.Sync() }()

	if err := ctl.SetMAC(context.Background(), iface, mac); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("MAC address on %s changed to %s\n", iface, mac)
}

func runRename(args []string) {
	fs := flag.NewFlagSet("rename", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	iface, newName := fs.Arg(0), fs.Arg(1)
	if iface == "" || newName == "" {
		fmt.Fprintln(os.Stderr, "rename: usage: sozin rename <interface> <new-name>")
		os.Exit(2)
	}

	ctl, logger := newController(*configPath)
	defer func() { _ = logger.Sync() }()

	if err := ctl.Rename(context.Background(), iface, newName); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s renamed to %s\n", iface, newName)
}

func runChannel(args []string) {
	fs := flag.NewFlagSet("channel", flag.ExitOnError)
	ch := fs.Int("c", 0, "channel number (required)")
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	iface := fs.Arg(0)
	if iface == "" || *ch <= 0 {
		fmt.Fprintln(os.Stderr, "channel: usage: sozin channel -c <n> <interface>")
		os.Exit(2)
	}

	ctl, logger := newController(*configPath)
	defer func() { _ = logger.Sync() }()

	if err := ctl.SetChannel(context.Background(), iface, *ch); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s tuned to channel %d\n", iface, *ch)
}

func runRestart(args []string) {
	fs := flag.NewFlagSet("restart", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctl, logger := newController(*configPath)
	defer func() { _ = logger.Sync() }()

	if err := ctl.RestartNetworkManager(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Println("NetworkManager restarted")
}
