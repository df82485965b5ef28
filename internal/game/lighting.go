package game

// lightingMode selects the water tint and fog thickness.
type lightingMode int

const (
	day lightingMode = iota
	night
)

func (m lightingMode) String() string {
	if m == night {
		return "night"
	}
	return "day"
}

func (m lightingMode) toggle() lightingMode {
	if m == day {
		return night
	}
	return day
}

// fog returns the clear/fog colour and exponential fog density. Night water
// is darker and murkier.
func (m lightingMode) fog() (color [3]float32, density float32) {
	if m == night {
		return [3]float32{0.016, 0.067, 0.122}, 0.024
	}
	return [3]float32{0.039, 0.165, 0.227}, 0.01
}
