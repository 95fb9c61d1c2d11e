package models

import "time"

// InterfaceState is the derived administrative state of a link.
// It is inferred from the link listing text, not authoritative.
type InterfaceState string

const (
	InterfaceUp      InterfaceState = "up"
	InterfaceDown    InterfaceState = "down"
	InterfaceUnknown InterfaceState = "unknown"
)

// InterfaceKind categorizes a network interface by capability and naming.
type InterfaceKind string

const (
	KindWireless InterfaceKind = "wireless"
	KindEthernet InterfaceKind = "ethernet"
	KindLoopback InterfaceKind = "loopback"
	KindVirtual  InterfaceKind = "virtual"
	KindUnknown  InterfaceKind = "unknown"
)

// WirelessMode is the operating mode of a wireless device.
type WirelessMode string

const (
	ModeManaged WirelessMode = "managed"
	ModeMonitor WirelessMode = "monitor"
	ModeMaster  WirelessMode = "master"
	ModeAdhoc   WirelessMode = "ad-hoc"
	ModeUnknown WirelessMode = "unknown"
)

// SecurityType is the inferred security posture of an access point.
type SecurityType string

const (
	SecurityOpen           SecurityType = "Open"
	SecurityWEP            SecurityType = "WEP"
	SecurityWPA            SecurityType = "WPA"
	SecurityWPA2           SecurityType = "WPA2"
	SecurityWPA3           SecurityType = "WPA3"
	SecurityWPA2Enterprise SecurityType = "WPA2-Enterprise"
	SecurityUnknown        SecurityType = "Unknown"
)

// InterfaceRecord represents one host network interface at enumeration time.
// Records carry no identity across enumerations; a later record with the same
// name is a full replacement.
type InterfaceRecord struct {
	Name       string         `json:"name" example:"wlan0"`
	MACAddress string         `json:"mac_address,omitempty" example:"00:1a:2b:3c:4d:5e"`
	IPAddress  string         `json:"ip_address,omitempty" example:"192.168.1.42"`
	State      InterfaceState `json:"state" example:"up"`
	Kind       InterfaceKind  `json:"kind" example:"wireless"`
	Driver     string         `json:"driver,omitempty" example:"iwlwifi"`
}

// WifiNetworkRecord represents one access point observed during a scan.
// The BSSID is the identity; distinct access points may share an SSID.
type WifiNetworkRecord struct {
	SSID           string       `json:"ssid" example:"HomeNet"`
	BSSID          string       `json:"bssid" example:"aa:bb:cc:dd:ee:ff"`
	Channel        int          `json:"channel" example:"6"`
	Frequency      int          `json:"frequency" example:"2437"`
	SignalStrength int          `json:"signal_strength" example:"-58"`
	Security       SecurityType `json:"security" example:"WPA2"`
	Mode           string       `json:"mode" example:"Infrastructure"`
	LastSeen       time.Time    `json:"last_seen" example:"2026-01-15T10:30:00Z"`
}
