package wifiscan

import "testing"

func TestQuality(t *testing.T) {
	tests := []struct {
		name      string
		signalDBm int
		want      int
	}{
		{"strong boundary", -50, 100},
		{"weak boundary", -100, 0},
		{"midpoint", -75, 50},
		{"linear -60", -60, 80},
		{"linear -90", -90, 20},
		{"clamp above", -30, 100},
		{"clamp below", -120, 0},
		{"positive reading clamps", 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quality(tt.signalDBm); got != tt.want {
				t.Errorf("Quality(%d) = %d, want %d", tt.signalDBm, got, tt.want)
			}
		})
	}
}

func TestBars(t *testing.T) {
	tests := []struct {
		name      string
		signalDBm int
		want      string
	}{
		{"full", -50, "████"},
		{"80 boundary", -60, "████"},
		{"three", -65, "███░"},
		{"two", -72, "██░░"},
		{"one", -85, "█░░░"},
		{"empty", -100, "░░░░"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bars(tt.signalDBm); got != tt.want {
				t.Errorf("Bars(%d) = %q, want %q", tt.signalDBm, got, tt.want)
			}
		})
	}
}
