package wifiscan

// Quality maps a dBm reading to a 0-100 percentage. -50 dBm or stronger is
// 100, -100 dBm or weaker is 0, linear in between: quality = 2*(dBm+100).
func Quality(signalDBm int) int {
	switch {
	case signalDBm >= -50:
		return 100
	case signalDBm <= -100:
		return 0
	default:
		return 2 * (signalDBm + 100)
	}
}

// Bars renders a signal level as a coarse four-glyph bar, one band per
// 20 quality points.
func Bars(signalDBm int) string {
	switch q := Quality(signalDBm); {
	case q >= 80:
		return "████"
	case q >= 60:
		return "███░"
	case q >= 40:
		return "██░░"
	case q >= 20:
		return "█░░░"
	default:
		return "░░░░"
	}
}
