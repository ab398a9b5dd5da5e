package registry

import (
	_ "embed"
	"fmt"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

//go:embed slides.yaml
var defaultSlides []byte

// Parse decodes a YAML document holding either a list of slides or a
// mapping with a "slides" key.
func Parse(data []byte) (*Registry, error) {
	slides, err := DecodeSlides(data)
	if err != nil {
		return nil, err
	}
	return New(slides...)
}

// DecodeSlides decodes YAML into slides without building a registry.
func DecodeSlides(data []byte) ([]domain.Slide, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse slides yaml: %w", err)
	}
	if doc, ok := raw.(map[string]any); ok {
		raw = doc["slides"]
	}

	var slides []domain.Slide
	if err := DecodeSlide(raw, &slides); err != nil {
		return nil, fmt.Errorf("failed to decode slides: %w", err)
	}
	return slides, nil
}

// DecodeSlide decodes loosely typed front matter (maps, lists) into out.
// Unknown keys are ignored; scalars are weakly converted ("true" -> true).
func DecodeSlide(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// Default returns the registry built from the embedded slide list.
func Default() *Registry {
	reg, err := Parse(defaultSlides)
	if err != nil {
		panic(fmt.Sprintf("embedded slides are invalid: %v", err))
	}
	return reg
}
