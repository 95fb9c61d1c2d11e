//go:build linux

package wifiscan

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hsylva/sozin/pkg/models"
	"github.com/mdlayher/wifi"
	"go.uber.org/zap"
)

// Compile-time interface guard.
var _ NetworkScanner = (*NL80211Scanner)(nil)

// NL80211Scanner discovers access points directly over nl80211 instead of
// parsing iw output. It is stateless; results come from the kernel BSS list.
type NL80211Scanner struct {
	iface  string
	logger *zap.Logger
}

// NewNL80211Scanner creates a native scanner for the named interface.
func NewNL80211Scanner(iface string, logger *zap.Logger) *NL80211Scanner {
	return &NL80211Scanner{iface: iface, logger: logger}
}

// Scan triggers an active scan and returns the kernel's BSS list, sorted
// strongest-signal-first. Requires root or CAP_NET_ADMIN for the active
// scan; a rejected trigger falls back to cached kernel results.
func (s *NL80211Scanner) Scan(ctx context.Context) ([]models.WifiNetworkRecord, error) {
	c, err := wifi.New()
	if err != nil {
		return nil, fmt.Errorf("open wifi client: %w", err)
	}
	defer c.Close()

	ifaces, err := c.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("enumerate wifi interfaces: %w", err)
	}

	var ifi *wifi.Interface
	for _, candidate := range ifaces {
		if candidate.Name == s.iface {
			ifi = candidate
			break
		}
	}
	if ifi == nil {
		return nil, fmt.Errorf("no wifi interface named %q", s.iface)
	}

	if scanErr := c.Scan(ctx, ifi); scanErr != nil {
		if isPermissionError(scanErr) {
			s.logger.Warn("active scan requires elevated privileges, using cached results",
				zap.String("interface", s.iface))
		} else if !errors.Is(scanErr, wifi.ErrScanAborted) {
			s.logger.Debug("active scan failed, using cached results", zap.Error(scanErr))
		}
	}

	bssList, err := c.AccessPoints(ifi)
	if err != nil {
		return nil, fmt.Errorf("get access points: %w", err)
	}

	seen := time.Now()
	networks := make([]models.WifiNetworkRecord, 0, len(bssList))
	for _, bss := range bssList {
		if bss.BSSID == nil {
			continue
		}
		ssid := bss.SSID
		if ssid == "" {
			ssid = hiddenSSID
		}
		networks = append(networks, models.WifiNetworkRecord{
			SSID:           ssid,
			BSSID:          bss.BSSID.String(),
			Channel:        freqToChannel(bss.Frequency),
			Frequency:      bss.Frequency,
			SignalStrength: int(bss.Signal / 100), // mBm to dBm
			Security:       rsnToSecurity(bss.RSN),
			Mode:           "Infrastructure",
			LastSeen:       seen,
		})
	}

	sort.SliceStable(networks, func(i, j int) bool {
		return networks[i].SignalStrength > networks[j].SignalStrength
	})
	return networks, nil
}

// rsnToSecurity maps an RSN information element to a SecurityType.
func rsnToSecurity(rsn wifi.RSNInfo) models.SecurityType {
	if !rsn.IsInitialized() {
		return models.SecurityOpen
	}

	hasWPA3 := false
	hasWPA2 := false
	hasEnterprise := false
	for _, akm := range rsn.AKMs {
		switch akm {
		case wifi.RSNAkmSAE, wifi.RSNAkmFTSAE:
			hasWPA3 = true
		case wifi.RSNAkm8021X, wifi.RSNAkmFT8021X:
			hasWPA2 = true
			hasEnterprise = true
		case wifi.RSNAkmPSK, wifi.RSNAkmFTPSK:
			hasWPA2 = true
		}
	}

	switch {
	case hasWPA3:
		return models.SecurityWPA3
	case hasEnterprise:
		return models.SecurityWPA2Enterprise
	case hasWPA2:
		return models.SecurityWPA2
	}

	// Fall back to cipher analysis for older networks.
	for _, cipher := range rsn.PairwiseCiphers {
		switch cipher {
		case wifi.RSNCipherCCMP128, wifi.RSNCipherGCMP128, wifi.RSNCipherGCMP256, wifi.RSNCipherCCMP256:
			return models.SecurityWPA2
		case wifi.RSNCipherTKIP:
			return models.SecurityWPA
		case wifi.RSNCipherWEP40, wifi.RSNCipherWEP104:
			return models.SecurityWEP
		}
	}

	return models.SecurityUnknown
}

// isPermissionError checks whether the error is a permission-related error.
func isPermissionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "permission denied") || strings.Contains(msg, "operation not permitted")
}
