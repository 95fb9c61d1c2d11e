package wifiscan

import (
	"testing"

	"github.com/hsylva/sozin/pkg/models"
)

func TestUpgradeSecuritySingleLine(t *testing.T) {
	tests := []struct {
		name    string
		current models.SecurityType
		line    string
		want    models.SecurityType
	}{
		{"WPA3 from open", models.SecurityOpen, "\t* Authentication suites: SAE WPA3", models.SecurityWPA3},
		{"WPA3 over WPA2", models.SecurityWPA2, "RSN WPA3 capable", models.SecurityWPA3},
		{"RSN means WPA2", models.SecurityOpen, "RSN:\t * Version: 1", models.SecurityWPA2},
		{"WPA2 marker", models.SecurityOpen, "WPA2 capable", models.SecurityWPA2},
		{"RSN with 802.1X", models.SecurityOpen, "RSN: * Authentication suites: IEEE 802.1X", models.SecurityWPA2Enterprise},
		{"RSN with EAP", models.SecurityOpen, "RSN: EAP suites", models.SecurityWPA2Enterprise},
		{"WPA from open", models.SecurityOpen, "WPA:\t * Version: 1", models.SecurityWPA},
		{"WEP from open", models.SecurityOpen, "capability: ESS Privacy WEP", models.SecurityWEP},
		{"WPA3 sticky against RSN", models.SecurityWPA3, "RSN:\t * Version: 1", models.SecurityWPA3},
		{"WPA3 sticky against enterprise RSN", models.SecurityWPA3, "RSN: IEEE 802.1X", models.SecurityWPA3},
		{"WPA does not downgrade WPA2", models.SecurityWPA2, "WPA:\t * Version: 1", models.SecurityWPA2},
		{"WEP does not downgrade WPA", models.SecurityWPA, "WEP marker", models.SecurityWPA},
		{"no marker no change", models.SecurityOpen, "capability: ESS", models.SecurityOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := upgradeSecurity(tt.current, tt.line)
			if got != tt.want {
				t.Errorf("upgradeSecurity(%q, %q) = %q, want %q", tt.current, tt.line, got, tt.want)
			}
		})
	}
}

func TestUpgradeSecurityAcrossLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  models.SecurityType
	}{
		{
			"WPA3 anywhere wins regardless of order",
			[]string{"WEP marker", "WPA3 SAE", "RSN:\t * Version: 1", "WPA:\t * Version: 1"},
			models.SecurityWPA3,
		},
		{
			"WEP then RSN upgrades",
			[]string{"capability: Privacy WEP", "RSN:\t * Version: 1"},
			models.SecurityWPA2,
		},
		{
			"WPA then RSN upgrades",
			[]string{"WPA:\t * Version: 1", "RSN:\t * Version: 1"},
			models.SecurityWPA2,
		},
		{
			"enterprise RSN alone",
			[]string{"RSN: * Authentication suites: IEEE 802.1X"},
			models.SecurityWPA2Enterprise,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sec := models.SecurityOpen
			for _, line := range tt.lines {
				sec = upgradeSecurity(sec, line)
			}
			if sec != tt.want {
				t.Errorf("final security = %q, want %q", sec, tt.want)
			}
		})
	}
}
