package link

import (
	"context"
	"strings"

	"github.com/hsylva/sozin/pkg/models"
	"go.uber.org/zap"
)

// loopbackName is excluded from all device-specific lookups.
const loopbackName = "lo"

// kindRule maps a name-prefix set to an interface kind. Rules are evaluated
// in order after the wireless capability marker check; first match wins.
type kindRule struct {
	prefixes []string
	kind     models.InterfaceKind
}

var kindRules = []kindRule{
	{[]string{"wl", "wlan", "wifi"}, models.KindWireless},
	{[]string{"eth", "en"}, models.KindEthernet},
	{[]string{"veth", "docker", "br-"}, models.KindVirtual},
}

// modeRule maps device-info keywords to a wireless mode. Rules are evaluated
// in order against lines containing "type"; first match wins.
type modeRule struct {
	keywords []string
	mode     models.WirelessMode
}

var modeRules = []modeRule{
	{[]string{"monitor"}, models.ModeMonitor},
	{[]string{"managed"}, models.ModeManaged},
	{[]string{"AP", "master"}, models.ModeMaster},
	{[]string{"IBSS", "ad-hoc"}, models.ModeAdhoc},
}

// Manager enumerates and classifies host network interfaces.
type Manager struct {
	provider DataProvider
	logger   *zap.Logger
}

// NewManager creates a Manager over the given provider.
func NewManager(provider DataProvider, logger *zap.Logger) *Manager {
	return &Manager{provider: provider, logger: logger}
}

// Interfaces returns a fresh snapshot of all host interfaces. It fails only
// when the link listing itself cannot be obtained; per-device lookup failures
// degrade to absent fields.
func (m *Manager) Interfaces(ctx context.Context) ([]models.InterfaceRecord, error) {
	listing, err := m.provider.ListLinks(ctx)
	if err != nil {
		return nil, err
	}

	var records []models.InterfaceRecord
	for _, line := range strings.Split(listing, "\n") {
		if rec, ok := m.ParseLinkLine(ctx, line); ok {
			records = append(records, rec)
		}
	}
	m.logger.Debug("enumerated interfaces", zap.Int("count", len(records)))
	return records, nil
}

// WirelessInterfaces returns only the wireless interfaces.
func (m *Manager) WirelessInterfaces(ctx context.Context) ([]models.InterfaceRecord, error) {
	records, err := m.Interfaces(ctx)
	if err != nil {
		return nil, err
	}
	wireless := records[:0:0]
	for _, rec := range records {
		if rec.Kind == models.KindWireless {
			wireless = append(wireless, rec)
		}
	}
	return wireless, nil
}

// ParseLinkLine classifies one line of the link listing. The second return
// is false when the line has fewer than two whitespace tokens.
func (m *Manager) ParseLinkLine(ctx context.Context, line string) (models.InterfaceRecord, bool) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return models.InterfaceRecord{}, false
	}

	name := strings.TrimSuffix(parts[1], ":")

	// Loopback short-circuits: always up, never queried per-device.
	if name == loopbackName {
		return models.InterfaceRecord{
			Name:  name,
			State: models.InterfaceUp,
			Kind:  models.KindLoopback,
		}, true
	}

	// Substring match on the raw line, not a tokenized flag parse. An
	// interface whose name contains "state UP" would misclassify; the fixed
	// ip -o output format makes that acceptable.
	state := models.InterfaceUnknown
	if strings.Contains(line, "state UP") {
		state = models.InterfaceUp
	} else if strings.Contains(line, "state DOWN") {
		state = models.InterfaceDown
	}

	return models.InterfaceRecord{
		Name:       name,
		MACAddress: m.provider.ReadMAC(name),
		IPAddress:  firstInetAddress(m.provider.ReadIPAddresses(ctx, name)),
		State:      state,
		Kind:       m.classifyKind(name),
		Driver:     m.provider.ReadDriver(name),
	}, true
}

// classifyKind derives the interface kind. The capability marker always
// takes precedence over name heuristics.
func (m *Manager) classifyKind(name string) models.InterfaceKind {
	if m.provider.HasWirelessMarker(name) {
		return models.KindWireless
	}
	for _, rule := range kindRules {
		for _, prefix := range rule.prefixes {
			if strings.HasPrefix(name, prefix) {
				return rule.kind
			}
		}
	}
	return models.KindUnknown
}

// firstInetAddress extracts the first IPv4 address from an ip addr listing.
// Any structural mismatch yields "" rather than an error.
func firstInetAddress(listing string) string {
	for _, line := range strings.Split(listing, "\n") {
		if !strings.Contains(line, "inet ") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return ""
		}
		addr, _, _ := strings.Cut(fields[1], "/")
		return addr
	}
	return ""
}

// Mode returns the current wireless operating mode for the named device.
// It never fails; unreadable or unrecognized info yields ModeUnknown.
func (m *Manager) Mode(ctx context.Context, name string) models.WirelessMode {
	info := m.provider.ModeInfo(ctx, name)
	for _, line := range strings.Split(info, "\n") {
		if !strings.Contains(line, "type") {
			continue
		}
		for _, rule := range modeRules {
			for _, kw := range rule.keywords {
				if strings.Contains(line, kw) {
					return rule.mode
				}
			}
		}
	}
	return models.ModeUnknown
}
