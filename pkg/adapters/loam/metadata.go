package loam

// SlideMetadata is the front matter of a slide document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type SlideMetadata struct {
	Name         string `json:"name" mapstructure:"name"`
	Tag          string `json:"tag" mapstructure:"tag"`
	Description  string `json:"description" mapstructure:"description"`
	Link         string `json:"link" mapstructure:"link"`
	PreviewImage string `json:"preview_image" mapstructure:"preview_image"`
	Placeholder  bool   `json:"placeholder" mapstructure:"placeholder"`

	// Draft documents are skipped.
	Draft bool `json:"draft" mapstructure:"draft"`
}
