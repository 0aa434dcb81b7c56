package zonal

import (
	"fmt"
	"strings"
)

// Warning reports a non-fatal finding noticed while validating a page.
// Warnings never prevent rendering.
type Warning struct {
	// Page is the id of the page the finding belongs to.
	Page string
	// Message is a human-readable description of the finding.
	Message string
}

func (w Warning) String() string {
	if w.Page == "" {
		return w.Message
	}
	return fmt.Sprintf("[%s] %s", w.Page, w.Message)
}

// FormatWarnings joins warnings into a single newline-separated string
// suitable for logging.
//
// Example:
//
//	html, warnings, err := zonal.Open("geometry.yaml").HTML("home")
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", zonal.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}
