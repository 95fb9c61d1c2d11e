// Command sozin inspects and manipulates wireless network interfaces and
// discovers nearby networks by interpreting ip and iw output.
package main

import (
	"fmt"
	"os"

	"github.com/hsylva/sozin/internal/config"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const version = "2.0.0"

const usageText = `sozin - wireless interface manager and network scanner

Usage: sozin <command> [flags]

Commands:
  list      List network interfaces (default)
  scan      Scan for nearby wireless networks
  watch     Scan continuously on an interval
  mode      Show the wireless operating mode of an interface
  monitor   Enable or disable monitor mode
  up        Bring an interface up
  down      Bring an interface down
  mac       Change an interface MAC address (random if none given)
  rename    Rename an interface
  channel   Set the wireless channel
  restart   Restart NetworkManager
  history   Show saved scan sessions
  version   Print version information

Run "sozin <command> -h" for command flags.
`

func main() {
	cmd := "list"
	var args []string
	if len(os.Args) > 1 {
		cmd = os.Args[1]
		args = os.Args[2:]
	}

	switch cmd {
	case "list":
		runList(args)
	case "scan":
		runScan(args)
	case "watch":
		runWatch(args)
	case "mode":
		runMode(args)
	case "monitor":
		runMonitor(args)
	case "up":
		runUpDown(args, true)
	case "down":
		runUpDown(args, false)
	case "mac":
		runMac(args)
	case "rename":
		runRename(args)
	case "channel":
		runChannel(args)
	case "restart":
		runRestart(args)
	case "history":
		runHistory(args)
	case "version":
		fmt.Println("sozin " + version)
	case "help", "-h", "--help":
		fmt.Print(usageText)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usageText)
		os.Exit(2)
	}
}

// setup loads configuration and builds the logger. Fatal on failure: without
// either there is nothing sensible to continue with.
func setup(configPath string) (*viper.Viper, *zap.Logger) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	return cfg, logger
}

// warnIfNotRoot prints an advisory for operations that need privileges.
func warnIfNotRoot() {
	if os.Geteuid() != 0 {
		fmt.Fprintln(os.Stderr, "warning: some operations require root privileges")
	}
}
