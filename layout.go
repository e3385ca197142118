package cluster

// Readings is the telemetry the default gauges display.
// telemetry.State implements it.
type Readings interface {
	Speed() int
	RPM() int
}

// SpeedGauge is the speedometer: 0-280 km/h with a tick every 20.
func SpeedGauge(r Readings) Gauge {
	return Gauge{
		Center:   Pt(300, 300),
		MaxValue: 280,
		TickMin:  0,
		TickMax:  280,
		TickStep: 20,
		Label:    "km/h",
		Value:    r.Speed,
	}
}

// RPMGauge is the tachometer: 0-8000 rpm with a tick every 1000.
func RPMGauge(r Readings) Gauge {
	return Gauge{
		Center:   Pt(900, 300),
		MaxValue: 8000,
		TickMin:  0,
		TickMax:  8000,
		TickStep: 1000,
		Label:    "rpm",
		Value:    r.RPM,
	}
}

// DefaultGauges returns the speedometer and tachometer side by side on a
// Width x Height surface.
func DefaultGauges(r Readings) []Gauge {
	return []Gauge{SpeedGauge(r), RPMGauge(r)}
}
