package wifiscan

import (
	"strings"

	"github.com/hsylva/sozin/pkg/models"
)

// upgradeSecurity folds one security-indicating scan line into the current
// inference. The inference is monotonic: Open is the only freely overridable
// starting state, WPA3 always wins outright and is never downgraded, and
// RSN/WPA2 markers upgrade anything weaker. Access points commonly advertise
// both WPA and RSN information elements across separate lines; the strongest
// marker actually seen decides the final posture.
func upgradeSecurity(current models.SecurityType, line string) models.SecurityType {
	switch {
	case strings.Contains(line, "WPA3"):
		return models.SecurityWPA3

	case strings.Contains(line, "RSN") || strings.Contains(line, "WPA2"):
		if current == models.SecurityWPA3 {
			return current
		}
		if strings.Contains(line, "802.1X") || strings.Contains(line, "EAP") {
			return models.SecurityWPA2Enterprise
		}
		return models.SecurityWPA2

	case strings.Contains(line, "WPA") && current == models.SecurityOpen:
		return models.SecurityWPA

	case strings.Contains(line, "WEP") && current == models.SecurityOpen:
		return models.SecurityWEP
	}
	return current
}
