package media

import (
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

// Mapping associates a base name with the asset's path relative to the source directory.
type Mapping map[string]string

var defaultMapping = Mapping{
	"district-logo":       "brand/district-logo.svg",
	"district-logo-white": "brand/district-logo-white.svg",

	"hero-lobby":    "hero/hero-lobby.jpg",
	"hero-garden":   "hero/hero-garden.jpg",
	"hero-florals":  "hero/hero-florals.jpg",
	"about-studio":  "about/about-studio.jpg",
	"contact-cover": "about/contact-cover.jpg",

	"service-fitout":  "services/service-fitout.svg",
	"service-design":  "services/service-design.svg",
	"service-flowers": "services/service-flowers.svg",
	"service-events":  "services/service-events.svg",

	"project-riyadh-hq":      "projects/project-riyadh-hq.jpg",
	"project-jeddah-lounge":  "projects/project-jeddah-lounge.jpg",
	"project-diriyah-villa":  "projects/project-diriyah-villa.jpg",
	"project-kafd-reception": "projects/project-kafd-reception.jpg",

	"amazon":   "logos/amazon.png",
	"aramco":   "logos/aramco.png",
	"stc":      "logos/stc.png",
	"neom":     "logos/neom.png",
	"sabic":    "logos/sabic.png",
	"alrajhi":  "logos/alrajhi.png",
	"marriott": "logos/marriott.png",
	"hilton":   "logos/hilton.png",
}

// DefaultMapping returns a copy of the built-in table.
func DefaultMapping() Mapping {
	return maps.Clone(defaultMapping)
}

type mappingFile struct {
	Mappings map[string]string `yaml:"mappings"`
}

// LoadMapping returns the built-in table overlaid with the entries of the YAML file at
// path. An empty path returns the built-in table.
//
//	mappings:
//	  amazon: partners/amazon.png
func LoadMapping(path string) (Mapping, error) {
	m := DefaultMapping()
	if path == "" {
		return m, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}
	var f mappingFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse mapping file %s: %w", path, err)
	}
	for base, rel := range f.Mappings {
		if rel == "" {
			delete(m, base)
			continue
		}
		m[base] = rel
	}
	return m, nil
}
