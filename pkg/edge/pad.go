package edge

// PadSource supplies the four logical buttons a menu is driven by. Hosts map
// their physical device (keys, gamepad buttons, remote events) onto these.
type PadSource struct {
	SelectUp   Source
	SelectDown Source
	Increase   Source
	Decrease   Source
}

// Pad bundles one Detector per logical button.
type Pad struct {
	SelectUp   *Detector
	SelectDown *Detector
	Increase   *Detector
	Decrease   *Detector
}

// NewPad constructs a Pad over src.
func NewPad(src PadSource) *Pad {
	return &Pad{
		SelectUp:   New(src.SelectUp),
		SelectDown: New(src.SelectDown),
		Increase:   New(src.Increase),
		Decrease:   New(src.Decrease),
	}
}

func (p *Pad) detectors() []*Detector {
	return []*Detector{p.SelectUp, p.SelectDown, p.Increase, p.Decrease}
}

// Poll polls every button once.
func (p *Pad) Poll() {
	for _, d := range p.detectors() {
		d.Poll()
	}
}

// JustTriggered reports whether any button was activated on the last Poll.
func (p *Pad) JustTriggered() bool {
	for _, d := range p.detectors() {
		if d.JustActivated() {
			return true
		}
	}
	return false
}
