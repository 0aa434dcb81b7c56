package validate

import (
	"path"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tsawler/zonal/core"
	"github.com/tsawler/zonal/store"
)

var fold = cases.Fold()

// validateConstraints applies the named cross-attribute constraints an
// object type opts into. Unknown constraint names are ignored so that
// geometry documents can carry constraints this version does not know.
func (v *Validator) validateConstraints(obj *store.Object, constraints map[string]bool) {
	if constraints["alt_not_filename"] {
		v.checkAltNotFilename(obj)
	}
	if constraints["href_not_empty"] {
		v.checkHrefNotEmpty(obj)
	}
}

// checkAltNotFilename rejects alt text that merely restates the image
// filename. Comparison is case-folded and also matches the stem with the
// extension stripped, so "Photo.JPG" does not pass for src "photo.jpg".
func (v *Validator) checkAltNotFilename(obj *store.Object) {
	alt, ok := obj.Attributes.Get("alt").(core.String)
	if !ok || alt == "" {
		return
	}
	src, ok := obj.Attributes.Get("src").(core.String)
	if !ok || src == "" {
		return
	}

	base := path.Base(string(src))
	stem := strings.TrimSuffix(base, path.Ext(base))

	folded := fold.String(string(alt))
	if folded == fold.String(base) || folded == fold.String(stem) {
		v.errorf("alt text of %q must describe the image, not repeat the filename %q",
			obj.ID, base)
	}
}

// checkHrefNotEmpty rejects interactive objects whose target is blank or
// whitespace-only.
func (v *Validator) checkHrefNotEmpty(obj *store.Object) {
	href := obj.Attributes.Get("href")
	if href == nil {
		return
	}
	s, ok := href.(core.String)
	if !ok || strings.TrimSpace(string(s)) == "" {
		v.errorf("attribute \"href\" of %q must not be empty", obj.ID)
	}
}
