package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/zonal"
	"github.com/tsawler/zonal/notation"
)

// siteConfig holds per-site settings. Sites either pass everything on the
// command line or place a zonal.yaml next to their content and point the
// commands at it with -config. Flags win over the file.
type siteConfig struct {
	// Geometry is the path to the geometry document.
	Geometry string `yaml:"geometry"`

	// Style is the path to the style map (optional).
	Style string `yaml:"style"`

	// Objects is the content object directory
	// (default: "objects" next to the geometry file).
	Objects string `yaml:"objects"`

	// Page is the default page to render when -page is omitted.
	Page string `yaml:"page"`

	// ZonePattern overrides the zone id pattern accepted in tag notation.
	ZonePattern string `yaml:"zone_pattern"`
}

// loadSiteConfig reads a site configuration file. Relative paths in the
// file are resolved against the file's own directory.
func loadSiteConfig(path string) (siteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return siteConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg siteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return siteConfig{}, fmt.Errorf("parsing config file: %w", err)
	}

	base := filepath.Dir(path)
	for _, p := range []*string{&cfg.Geometry, &cfg.Style, &cfg.Objects} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	if cfg.ZonePattern == "" {
		cfg.ZonePattern = notation.DefaultZonePattern
	}
	return cfg, nil
}

// siteSettings resolves the effective settings for a command: the config
// file (when given) layered under the command-line flags. A geometry path
// must come from one of the two.
func siteSettings(configPath, geometry, style, objects, page string) (siteConfig, error) {
	var cfg siteConfig
	if configPath != "" {
		loaded, err := loadSiteConfig(configPath)
		if err != nil {
			return siteConfig{}, err
		}
		cfg = loaded
	}
	cfg = cfg.merge(geometry, style, objects, page)
	if cfg.Geometry == "" {
		return siteConfig{}, fmt.Errorf("no geometry document: pass -geometry or -config")
	}
	return cfg, nil
}

// merge applies command-line values over the config file's. Empty flag
// values leave the file's settings in place.
func (c siteConfig) merge(geometry, style, objects, page string) siteConfig {
	if geometry != "" {
		c.Geometry = geometry
	}
	if style != "" {
		c.Style = style
	}
	if objects != "" {
		c.Objects = objects
	}
	if page != "" {
		c.Page = page
	}
	return c
}

// pipeline builds the configured pipeline.
func (c siteConfig) pipeline() *zonal.Pipeline {
	p := zonal.Open(c.Geometry)
	if c.Style != "" {
		p = p.Styles(c.Style)
	}
	if c.Objects != "" {
		p = p.Objects(c.Objects)
	}
	if c.ZonePattern != "" && c.ZonePattern != notation.DefaultZonePattern {
		p = p.WithZonePattern(c.ZonePattern)
	}
	return p
}
