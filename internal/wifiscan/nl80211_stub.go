//go:build !linux

package wifiscan

import (
	"context"
	"errors"

	"github.com/hsylva/sozin/pkg/models"
	"go.uber.org/zap"
)

// NL80211Scanner is only available on Linux.
type NL80211Scanner struct{}

// NewNL80211Scanner returns a stub scanner on non-Linux platforms.
func NewNL80211Scanner(_ string, _ *zap.Logger) *NL80211Scanner {
	return &NL80211Scanner{}
}

func (*NL80211Scanner) Scan(_ context.Context) ([]models.WifiNetworkRecord, error) {
	return nil, errors.New("nl80211 scanning is only supported on linux")
}
