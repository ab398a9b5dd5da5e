package tween

// Visual is the sampled presentation of one slide.
type Visual struct {
	Opacity float64 `json:"opacity"`
	Scale   float64 `json:"scale"`
	Blur    float64 `json:"blur"`     // px
	OffsetX float64 `json:"offset_x"` // px

	// Interactive mirrors pointer-events: only the active slide accepts clicks.
	Interactive bool `json:"interactive"`

	// Inline is true while the slide carries animation state. Slides without it
	// fall back to their stylesheet (Rest, or Emphasized for the active slide).
	Inline bool `json:"inline"`
}

var (
	// Emphasized is the visual of the active slide.
	Emphasized = Visual{Opacity: 1, Scale: 1}

	// Rest is the de-emphasized visual every inactive slide settles on.
	Rest = Visual{Opacity: 0, Scale: 0.92, Blur: 8, OffsetX: -40}
)

// Lerp interpolates the numeric channels of a and b. Flags are taken from a.
func Lerp(a, b Visual, t float64) Visual {
	return Visual{
		Opacity:     a.Opacity + (b.Opacity-a.Opacity)*t,
		Scale:       a.Scale + (b.Scale-a.Scale)*t,
		Blur:        a.Blur + (b.Blur-a.Blur)*t,
		OffsetX:     a.OffsetX + (b.OffsetX-a.OffsetX)*t,
		Interactive: a.Interactive,
		Inline:      a.Inline,
	}
}

// Settled reports whether v matches target on every numeric channel.
func (v Visual) Settled(target Visual) bool {
	const eps = 1e-9
	return near(v.Opacity, target.Opacity, eps) &&
		near(v.Scale, target.Scale, eps) &&
		near(v.Blur, target.Blur, eps) &&
		near(v.OffsetX, target.OffsetX, eps)
}

func near(a, b, eps float64) bool {
	d := a - b
	return d < eps && d > -eps
}
