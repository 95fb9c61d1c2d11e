package link

import (
	"context"
	"testing"

	"github.com/hsylva/sozin/pkg/models"
	"go.uber.org/zap"
)

// fakeProvider implements DataProvider from fixed maps and records which
// devices had per-device lookups performed.
type fakeProvider struct {
	listing  string
	listErr  error
	wireless map[string]bool
	macs     map[string]string
	addrs    map[string]string
	drivers  map[string]string
	modeInfo map[string]string
	lookedUp []string
}

func (f *fakeProvider) ListLinks(_ context.Context) (string, error) {
	return f.listing, f.listErr
}

func (f *fakeProvider) HasWirelessMarker(name string) bool {
	return f.wireless[name]
}

func (f *fakeProvider) ReadMAC(name string) string {
	f.lookedUp = append(f.lookedUp, name)
	return f.macs[name]
}

func (f *fakeProvider) ReadIPAddresses(_ context.Context, name string) string {
	return f.addrs[name]
}

func (f *fakeProvider) ReadDriver(name string) string {
	return f.drivers[name]
}

func (f *fakeProvider) ModeInfo(_ context.Context, name string) string {
	return f.modeInfo[name]
}

func newTestManager(p *fakeProvider) *Manager {
	return NewManager(p, zap.NewNop())
}

func TestParseLinkLineState(t *testing.T) {
	tests := []struct {
		name string
		line string
		want models.InterfaceState
	}{
		{"state UP", `2: wlan0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc noqueue state UP mode DORMANT`, models.InterfaceUp},
		{"state DOWN", `3: eth0: <BROADCAST,MULTICAST> mtu 1500 qdisc noop state DOWN mode DEFAULT`, models.InterfaceDown},
		{"no state marker", `4: eth1: <BROADCAST,MULTICAST> mtu 1500 qdisc noop mode DEFAULT`, models.InterfaceUnknown},
		{"state UNKNOWN keyword", `5: tun0: <POINTOPOINT,UP,LOWER_UP> mtu 1500 state UNKNOWN mode DEFAULT`, models.InterfaceUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(&fakeProvider{})
			rec, ok := m.ParseLinkLine(context.Background(), tt.line)
			if !ok {
				t.Fatalf("ParseLinkLine(%q) not parseable", tt.line)
			}
			if rec.State != tt.want {
				t.Errorf("state = %q, want %q", rec.State, tt.want)
			}
		})
	}
}

func TestParseLinkLineTooFewTokens(t *testing.T) {
	m := newTestManager(&fakeProvider{})
	for _, line := range []string{"", "   ", "lonetoken"} {
		if _, ok := m.ParseLinkLine(context.Background(), line); ok {
			t.Errorf("ParseLinkLine(%q) = parseable, want not", line)
		}
	}
}

func TestParseLinkLineLoopback(t *testing.T) {
	p := &fakeProvider{macs: map[string]string{"lo": "00:00:00:00:00:00"}}
	m := newTestManager(p)

	rec, ok := m.ParseLinkLine(context.Background(), `1: lo: <LOOPBACK,UP,LOWER_UP> mtu 65536 qdisc noqueue state UNKNOWN`)
	if !ok {
		t.Fatal("loopback line not parseable")
	}
	if rec.State != models.InterfaceUp {
		t.Errorf("loopback state = %q, want up", rec.State)
	}
	if rec.Kind != models.KindLoopback {
		t.Errorf("loopback kind = %q, want loopback", rec.Kind)
	}
	if rec.MACAddress != "" || rec.IPAddress != "" || rec.Driver != "" {
		t.Errorf("loopback carries device attributes: %+v", rec)
	}
	if len(p.lookedUp) != 0 {
		t.Errorf("loopback triggered device lookups: %v", p.lookedUp)
	}
}

func TestClassifyKind(t *testing.T) {
	tests := []struct {
		name     string
		iface    string
		wireless bool
		want     models.InterfaceKind
	}{
		{"capability marker wins", "enp3s0", true, models.KindWireless},
		{"wl prefix", "wlp2s0", false, models.KindWireless},
		{"wlan prefix", "wlan0", false, models.KindWireless},
		{"wifi prefix", "wifi0", false, models.KindWireless},
		{"eth prefix", "eth0", false, models.KindEthernet},
		{"en prefix", "enp3s0", false, models.KindEthernet},
		{"veth prefix", "veth1a2b", false, models.KindVirtual},
		{"docker prefix", "docker0", false, models.KindVirtual},
		{"bridge prefix", "br-9f1c", false, models.KindVirtual},
		{"unmatched", "tun0", false, models.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{wireless: map[string]bool{tt.iface: tt.wireless}}
			got := newTestManager(p).classifyKind(tt.iface)
			if got != tt.want {
				t.Errorf("classifyKind(%q) = %q, want %q", tt.iface, got, tt.want)
			}
		})
	}
}

func TestFirstInetAddress(t *testing.T) {
	tests := []struct {
		name    string
		listing string
		want    string
	}{
		{
			"typical listing",
			"2: wlan0    inet 192.168.1.42/24 brd 192.168.1.255 scope global dynamic wlan0\n" +
				"       valid_lft 85348sec preferred_lft 85348sec",
			"192.168.1.42",
		},
		{
			"first address wins",
			"    inet 10.0.0.5/8 scope global\n    inet 10.0.0.6/8 scope global secondary",
			"10.0.0.5",
		},
		{"no inet line", "2: wlan0: <NO-CARRIER,BROADCAST>", ""},
		{"empty listing", "", ""},
		{"inet token only", "inet ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstInetAddress(tt.listing); got != tt.want {
				t.Errorf("firstInetAddress = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInterfaces(t *testing.T) {
	p := &fakeProvider{
		listing: "1: lo: <LOOPBACK,UP,LOWER_UP> mtu 65536 state UNKNOWN\n" +
			"2: wlan0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 state UP\n" +
			"3: eth0: <BROADCAST,MULTICAST> mtu 1500 state DOWN\n",
		wireless: map[string]bool{"wlan0": true},
		macs:     map[string]string{"wlan0": "aa:bb:cc:dd:ee:ff", "eth0": "11:22:33:44:55:66"},
		addrs:    map[string]string{"wlan0": "    inet 192.168.1.42/24 scope global"},
		drivers:  map[string]string{"wlan0": "iwlwifi"},
	}
	m := newTestManager(p)

	records, err := m.Interfaces(context.Background())
	if err != nil {
		t.Fatalf("Interfaces: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	wlan := records[1]
	if wlan.Name != "wlan0" || wlan.Kind != models.KindWireless || wlan.State != models.InterfaceUp {
		t.Errorf("unexpected wlan0 record: %+v", wlan)
	}
	if wlan.MACAddress != "aa:bb:cc:dd:ee:ff" || wlan.IPAddress != "192.168.1.42" || wlan.Driver != "iwlwifi" {
		t.Errorf("wlan0 attributes not resolved: %+v", wlan)
	}

	wireless, err := m.WirelessInterfaces(context.Background())
	if err != nil {
		t.Fatalf("WirelessInterfaces: %v", err)
	}
	if len(wireless) != 1 || wireless[0].Name != "wlan0" {
		t.Errorf("WirelessInterfaces = %+v, want only wlan0", wireless)
	}
}

func TestInterfacesListingFailure(t *testing.T) {
	m := newTestManager(&fakeProvider{listErr: context.DeadlineExceeded})
	if _, err := m.Interfaces(context.Background()); err == nil {
		t.Fatal("expected error when the link listing cannot be obtained")
	}
}

func TestMode(t *testing.T) {
	tests := []struct {
		name string
		info string
		want models.WirelessMode
	}{
		{"managed", "Interface wlan0\n\tifindex 3\n\ttype managed\n\tchannel 6", models.ModeManaged},
		{"monitor", "Interface mon0\n\ttype monitor", models.ModeMonitor},
		{"AP", "Interface ap0\n\ttype AP", models.ModeMaster},
		{"ad-hoc", "Interface adhoc0\n\ttype IBSS", models.ModeAdhoc},
		{"monitor beats managed on same line", "\ttype monitor managed", models.ModeMonitor},
		{"no type line", "Interface wlan0\n\tifindex 3", models.ModeUnknown},
		{"empty info", "", models.ModeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{modeInfo: map[string]string{"x0": tt.info}}
			got := newTestManager(p).Mode(context.Background(), "x0")
			if got != tt.want {
				t.Errorf("Mode = %q, want %q", got, tt.want)
			}
		})
	}
}
