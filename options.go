package zonal

import "github.com/tsawler/zonal/notation"

// renderOptions holds configuration for the pipeline.
type renderOptions struct {
	// Object lookup
	objectsDir string // "" means <geometry dir>/objects

	// Presentation
	stylePath string // "" means render without a style map

	// Tag notation
	zonePattern string
}

// defaultOptions returns the default pipeline options.
func defaultOptions() renderOptions {
	return renderOptions{
		objectsDir:  "",
		stylePath:   "",
		zonePattern: notation.DefaultZonePattern,
	}
}

// clone creates a copy of renderOptions.
func (o renderOptions) clone() renderOptions {
	return renderOptions{
		objectsDir:  o.objectsDir,
		stylePath:   o.stylePath,
		zonePattern: o.zonePattern,
	}
}
