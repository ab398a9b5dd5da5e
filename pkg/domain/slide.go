package domain

// Slide represents one promotional project card.
type Slide struct {
	// Name is the display title.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Tag is the category label shown above the title.
	Tag string `json:"tag" yaml:"tag" mapstructure:"tag"`

	// Description is the body text of the card.
	Description string `json:"description" yaml:"description" mapstructure:"description"`

	// Link is the external URL of the project. Empty means "not yet available".
	Link string `json:"link,omitempty" yaml:"link,omitempty" mapstructure:"link"`

	// PreviewImage is rendered as a blurred background when present.
	PreviewImage string `json:"preview_image,omitempty" yaml:"preview_image,omitempty" mapstructure:"preview_image"`

	// Placeholder marks a "coming soon" card. It suppresses the link and image
	// affordances and shows a placeholder badge instead.
	Placeholder bool `json:"placeholder,omitempty" yaml:"placeholder,omitempty" mapstructure:"placeholder"`
}

// HasLink reports whether the card should render its external link.
func (s Slide) HasLink() bool {
	return !s.Placeholder && s.Link != ""
}

// HasPreview reports whether the card should render its background image.
func (s Slide) HasPreview() bool {
	return !s.Placeholder && s.PreviewImage != ""
}
