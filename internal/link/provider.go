// Package link enumerates, classifies, and controls host network interfaces
// by interpreting the output of the ip and iw utilities.
package link

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DataProvider supplies the raw per-device text and pseudo-file lookups the
// classifier interprets. Implementations do the I/O; the classifier stays
// pure transformation logic.
type DataProvider interface {
	// ListLinks returns the raw multi-line link listing, one interface per
	// line in the form "<idx>: <name>: <flags...>".
	ListLinks(ctx context.Context) (string, error)

	// HasWirelessMarker reports whether a wireless capability marker exists
	// for the named device.
	HasWirelessMarker(name string) bool

	// ReadMAC returns the hardware address for the named device, or "" if
	// it cannot be read.
	ReadMAC(name string) string

	// ReadIPAddresses returns the raw address listing for the named device.
	// An empty string means the listing could not be obtained.
	ReadIPAddresses(ctx context.Context, name string) string

	// ReadDriver returns the driver name for the named device, or "" if it
	// cannot be determined.
	ReadDriver(name string) string

	// ModeInfo returns the raw device info text used for wireless mode
	// detection. An empty string means the info could not be obtained.
	ModeInfo(ctx context.Context, name string) string
}

// Runner executes an external command and returns its standard output.
// A non-zero exit status is an error carrying the trimmed stderr text.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

// NewRunner returns a Runner backed by os/exec.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return out, fmt.Errorf("%s: %s", name, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// SysProvider implements DataProvider against the live system: ip and iw for
// listings, /sys/class/net pseudo-files for per-device attributes.
type SysProvider struct {
	runner Runner
	sysfs  string // root of the class/net tree, overridable in tests
}

// NewSysProvider creates a DataProvider backed by the host system.
func NewSysProvider(runner Runner) *SysProvider {
	return &SysProvider{runner: runner, sysfs: "/sys/class/net"}
}

func (p *SysProvider) ListLinks(ctx context.Context) (string, error) {
	out, err := p.runner.Run(ctx, "ip", "-o", "link", "show")
	if err != nil {
		return "", fmt.Errorf("list links: %w", err)
	}
	return string(out), nil
}

func (p *SysProvider) HasWirelessMarker(name string) bool {
	_, err := os.Stat(filepath.Join(p.sysfs, name, "wireless"))
	return err == nil
}

func (p *SysProvider) ReadMAC(name string) string {
	data, err := os.ReadFile(filepath.Join(p.sysfs, name, "address"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (p *SysProvider) ReadIPAddresses(ctx context.Context, name string) string {
	out, err := p.runner.Run(ctx, "ip", "-4", "addr", "show", name)
	if err != nil {
		return ""
	}
	return string(out)
}

func (p *SysProvider) ReadDriver(name string) string {
	target, err := os.Readlink(filepath.Join(p.sysfs, name, "device", "driver"))
	if err != nil {
		return ""
	}
	return filepath.Base(target)
}

func (p *SysProvider) ModeInfo(ctx context.Context, name string) string {
	out, err := p.runner.Run(ctx, "iw", "dev", name, "info")
	if err != nil {
		return ""
	}
	return string(out)
}
