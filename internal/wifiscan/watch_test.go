package wifiscan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hsylva/sozin/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// newTestLimiter removes the scan spacing floor so tests run fast.
func newTestLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Inf, 1)
}

// scriptedScanner returns one canned result per call.
type scriptedScanner struct {
	results [][]models.WifiNetworkRecord
	errs    []error
	calls   int
}

func (s *scriptedScanner) Scan(_ context.Context) ([]models.WifiNetworkRecord, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.results) {
		return s.results[i], nil
	}
	return nil, nil
}

func TestWatcherDeliversAndStopsOnCancel(t *testing.T) {
	scanner := &scriptedScanner{
		results: [][]models.WifiNetworkRecord{
			{{BSSID: "aa:bb:cc:dd:ee:01", SSID: "Net"}},
		},
	}
	w := NewWatcher(scanner, time.Minute, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	var delivered []models.WifiNetworkRecord
	err := w.Run(ctx, func(networks []models.WifiNetworkRecord) {
		delivered = networks
		cancel()
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
	if len(delivered) != 1 || delivered[0].SSID != "Net" {
		t.Errorf("delivered = %+v, want the scan result", delivered)
	}
	if scanner.calls != 1 {
		t.Errorf("scanner called %d times, want 1", scanner.calls)
	}
}

func TestWatcherContinuesAfterScanError(t *testing.T) {
	scanner := &scriptedScanner{
		errs: []error{errors.New("scan failed"), nil},
		results: [][]models.WifiNetworkRecord{
			nil,
			{{BSSID: "aa:bb:cc:dd:ee:01", SSID: "Recovered"}},
		},
	}
	// The spacing floor forces the interval up; keep the test fast by
	// canceling from the delivery callback on the second iteration.
	w := &Watcher{
		scanner:  scanner,
		interval: 5 * time.Millisecond,
		limiter:  newTestLimiter(),
		logger:   zap.NewNop(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var got string
	err := w.Run(ctx, func(networks []models.WifiNetworkRecord) {
		if len(networks) > 0 {
			got = networks[0].SSID
		}
		cancel()
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
	if got != "Recovered" {
		t.Errorf("delivered ssid = %q, want scan after an error to succeed", got)
	}
	if scanner.calls < 2 {
		t.Errorf("scanner called %d times, want the loop to survive the error", scanner.calls)
	}
}
