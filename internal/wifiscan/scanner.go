// Package wifiscan discovers nearby wireless networks by parsing the output
// of iw scan operations into structured, deduplicated, ranked records.
package wifiscan

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hsylva/sozin/pkg/models"
	"go.uber.org/zap"
)

// DefaultScanTimeout bounds one scan trigger when no timeout is configured.
const DefaultScanTimeout = 10 * time.Second

// hiddenSSID is the placeholder recorded for networks that withhold their SSID.
const hiddenSSID = "<hidden>"

// NetworkScanner discovers nearby access points.
type NetworkScanner interface {
	Scan(ctx context.Context) ([]models.WifiNetworkRecord, error)
}

// ScanSource produces the raw multi-line text of one scan operation.
// Implementations do the I/O; the parser stays pure transformation logic.
type ScanSource interface {
	TriggerScan(ctx context.Context, iface string) (string, error)
}

// IWSource triggers scans through the iw utility.
type IWSource struct{}

func (IWSource) TriggerScan(ctx context.Context, iface string) (string, error) {
	out, err := exec.CommandContext(ctx, "iw", "dev", iface, "scan").Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("iw scan: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("iw scan: %w", err)
	}
	return string(out), nil
}

// Compile-time interface guard.
var _ NetworkScanner = (*Scanner)(nil)

// Scanner parses scan output for one interface and maintains a session cache
// keyed by BSSID. The cache is owned exclusively by the Scanner; callers
// sharing one instance across goroutines must serialize access.
type Scanner struct {
	iface    string
	source   ScanSource
	timeout  time.Duration
	logger   *zap.Logger
	networks map[string]models.WifiNetworkRecord
	now      func() time.Time
}

// NewScanner creates a Scanner for the named interface. A zero timeout
// falls back to DefaultScanTimeout.
func NewScanner(iface string, source ScanSource, timeout time.Duration, logger *zap.Logger) *Scanner {
	if timeout <= 0 {
		timeout = DefaultScanTimeout
	}
	return &Scanner{
		iface:    iface,
		source:   source,
		timeout:  timeout,
		logger:   logger,
		networks: make(map[string]models.WifiNetworkRecord),
		now:      time.Now,
	}
}

// Scan triggers one scan, parses the result, updates the session cache, and
// returns the networks seen in this scan sorted strongest-signal-first.
// A failed or timed-out scan leaves the cache untouched.
func (s *Scanner) Scan(ctx context.Context) ([]models.WifiNetworkRecord, error) {
	scanCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.source.TriggerScan(scanCtx, s.iface)
	if err != nil {
		if errors.Is(scanCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("scan on %s timed out after %s", s.iface, s.timeout)
		}
		return nil, classifyScanError(s.iface, err)
	}

	networks := s.parse(raw)
	s.logger.Debug("scan complete",
		zap.String("interface", s.iface),
		zap.Int("networks", len(networks)))
	return networks, nil
}

// classifyScanError attaches a remedy hint when the error text points at a
// permissions problem or a down interface. The hint is advisory text only.
func classifyScanError(iface string, err error) error {
	msg := err.Error()
	if strings.Contains(msg, "Operation not permitted") || strings.Contains(msg, "Network is down") {
		return fmt.Errorf("scan on %s failed: %w (try running as root, or bring the interface up)", iface, err)
	}
	return fmt.Errorf("scan on %s failed: %w", iface, err)
}

// parse consumes scan output in a single line-oriented pass. Each "BSS "
// marker opens a block; fields accumulate into a builder that is finalized
// at the next marker or at end of input. Malformed values degrade
// field-by-field; parsing itself never fails.
func (s *Scanner) parse(raw string) []models.WifiNetworkRecord {
	var networks []models.WifiNetworkRecord
	var current *networkBuilder

	finalize := func() {
		if current == nil {
			return
		}
		rec := current.build(s.now())
		s.networks[rec.BSSID] = rec
		networks = append(networks, rec)
		current = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		if rest, ok := strings.CutPrefix(line, "BSS "); ok {
			finalize()
			bssid, _, _ := strings.Cut(rest, "(")
			current = newNetworkBuilder(strings.TrimSpace(bssid))
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case strings.HasPrefix(line, "SSID:"):
			current.ssid = strings.TrimSpace(strings.TrimPrefix(line, "SSID:"))
			current.hasSSID = true

		case strings.HasPrefix(line, "freq:"):
			if f, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "freq:"))); err == nil {
				current.frequency = f
				current.channel = freqToChannel(f)
			}

		case strings.HasPrefix(line, "signal:"):
			fields := strings.Fields(strings.TrimPrefix(line, "signal:"))
			if len(fields) > 0 {
				if v, err := strconv.Atoi(fields[0]); err == nil {
					current.signal = v
					current.hasSignal = true
				}
			}

		case strings.Contains(line, "WPA") || strings.Contains(line, "RSN") || strings.Contains(line, "WEP"):
			current.security = upgradeSecurity(current.security, line)

		case strings.HasPrefix(line, "DS Parameter set:") && strings.Contains(line, "channel"):
			_, rest, _ := strings.Cut(line, "channel")
			if ch, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil {
				current.channel = ch
			} else {
				current.channel = 0
			}
		}
	}
	finalize()

	// Strongest signal first; ties keep encounter order.
	sort.SliceStable(networks, func(i, j int) bool {
		return networks[i].SignalStrength > networks[j].SignalStrength
	})
	return networks
}

// Cached returns the accumulated session cache, sorted like scan results.
// The cache is a secondary view; Scan never returns it directly.
func (s *Scanner) Cached() []models.WifiNetworkRecord {
	records := make([]models.WifiNetworkRecord, 0, len(s.networks))
	for _, rec := range s.networks {
		records = append(records, rec)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SignalStrength > records[j].SignalStrength
	})
	return records
}

// Network returns the cached record for a BSSID, if any.
func (s *Scanner) Network(bssid string) (models.WifiNetworkRecord, bool) {
	rec, ok := s.networks[bssid]
	return rec, ok
}

// ClearCache drops all cached records.
func (s *Scanner) ClearCache() {
	s.networks = make(map[string]models.WifiNetworkRecord)
}

// networkBuilder accumulates partial fields across the lines of one BSS
// block and converts once into an immutable record.
type networkBuilder struct {
	bssid     string
	ssid      string
	hasSSID   bool
	channel   int
	frequency int
	signal    int
	hasSignal bool
	security  models.SecurityType
}

func newNetworkBuilder(bssid string) *networkBuilder {
	return &networkBuilder{bssid: bssid, security: models.SecurityOpen}
}

func (b *networkBuilder) build(seen time.Time) models.WifiNetworkRecord {
	ssid := b.ssid
	if !b.hasSSID {
		ssid = hiddenSSID
	}
	signal := b.signal
	if !b.hasSignal {
		signal = -100
	}
	return models.WifiNetworkRecord{
		SSID:           ssid,
		BSSID:          b.bssid,
		Channel:        b.channel,
		Frequency:      b.frequency,
		SignalStrength: signal,
		Security:       b.security,
		Mode:           "Infrastructure",
		LastSeen:       seen,
	}
}
