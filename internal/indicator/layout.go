package indicator

// Layout describes the horizontal geometry of the tab bar.
type Layout struct {
	ContainerWidth float64
	Padding        float64
	Tabs           int
}

// SlotWidth is the width allotted to each tab.
func (l Layout) SlotWidth() float64 {
	if l.Tabs <= 0 {
		return 0
	}
	w := (l.ContainerWidth - l.Padding) / float64(l.Tabs)
	if w < 0 {
		return 0
	}
	return w
}

// Position is the indicator offset for the tab at index. Indexes outside
// the bar clamp to its ends.
func (l Layout) Position(index int) float64 {
	if index < 0 || l.Tabs <= 0 {
		return 0
	}
	if index >= l.Tabs {
		index = l.Tabs - 1
	}
	return float64(index) * l.SlotWidth()
}
