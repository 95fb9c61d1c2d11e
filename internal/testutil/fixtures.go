// Package testutil provides shared test fixtures.
package testutil

import (
	"time"

	"github.com/hsylva/sozin/pkg/models"
)

// NewNetwork returns a WifiNetworkRecord with sensible defaults, suitable for
// test fixtures. Override individual fields after creation as needed.
func NewNetwork(opts ...func(*models.WifiNetworkRecord)) models.WifiNetworkRecord {
	n := models.WifiNetworkRecord{
		SSID:           "TestNet",
		BSSID:          "aa:bb:cc:dd:ee:ff",
		Channel:        6,
		Frequency:      2437,
		SignalStrength: -55,
		Security:       models.SecurityWPA2,
		Mode:           "Infrastructure",
		LastSeen:       time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// WithSSID sets the network name.
func WithSSID(ssid string) func(*models.WifiNetworkRecord) {
	return func(n *models.WifiNetworkRecord) { n.SSID = ssid }
}

// WithBSSID sets the access point hardware address.
func WithBSSID(bssid string) func(*models.WifiNetworkRecord) {
	return func(n *models.WifiNetworkRecord) { n.BSSID = bssid }
}

// WithSignal sets the observed signal strength in dBm.
func WithSignal(dbm int) func(*models.WifiNetworkRecord) {
	return func(n *models.WifiNetworkRecord) { n.SignalStrength = dbm }
}

// WithChannel sets the channel and its matching center frequency.
func WithChannel(channel, frequency int) func(*models.WifiNetworkRecord) {
	return func(n *models.WifiNetworkRecord) {
		n.Channel = channel
		n.Frequency = frequency
	}
}

// WithSecurity sets the inferred security type.
func WithSecurity(sec models.SecurityType) func(*models.WifiNetworkRecord) {
	return func(n *models.WifiNetworkRecord) { n.Security = sec }
}

// NewInterface returns an InterfaceRecord with sensible defaults.
func NewInterface(opts ...func(*models.InterfaceRecord)) models.InterfaceRecord {
	r := models.InterfaceRecord{
		Name:       "wlan0",
		MACAddress: "00:11:22:33:44:55",
		IPAddress:  "192.168.1.100",
		State:      models.InterfaceUp,
		Kind:       models.KindWireless,
		Driver:     "iwlwifi",
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
