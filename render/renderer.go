package render

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/zonal/core"
	"github.com/tsawler/zonal/geometry"
	"github.com/tsawler/zonal/notation"
	"github.com/tsawler/zonal/store"
)

// Renderer projects validated pages into HTML. It is safe to reuse across
// pages; rendering is deterministic with respect to the geometry, the
// store contents, and the style map.
type Renderer struct {
	doc    *geometry.Document
	store  *store.Store
	parser *notation.Parser
	styles *StyleMap
}

// New builds a renderer. A nil style map renders without presentation
// classes; a nil parser falls back to the default zone pattern.
func New(doc *geometry.Document, st *store.Store, parser *notation.Parser, styles *StyleMap) *Renderer {
	if parser == nil {
		parser = notation.NewParser()
	}
	return &Renderer{doc: doc, store: st, parser: parser, styles: styles}
}

// RenderPage renders every zone of a page in assignment order and returns
// the concatenated markup.
func (r *Renderer) RenderPage(pageID string) (string, error) {
	page := r.doc.GetPage(pageID)
	if page == nil {
		return "", fmt.Errorf("page %q is not defined in the geometry", pageID)
	}
	assignments := r.doc.GetPageAssignment(pageID)
	if assignments == nil {
		return "", fmt.Errorf("page %q has no object assignments", pageID)
	}

	var b strings.Builder
	for _, raw := range assignments {
		parsed, err := r.parser.Parse(raw)
		if err != nil {
			return "", err
		}
		if err := r.renderZone(&b, page, parsed); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func (r *Renderer) renderZone(b *strings.Builder, page *geometry.Page, parsed notation.Assignment) error {
	zone, ok := page.Zones[parsed.Zone]
	if !ok {
		return fmt.Errorf("zone %q is not defined for this page", parsed.Zone)
	}

	fmt.Fprintf(b, "<section class=\"zone %s %s\" data-zone=\"%s\">\n",
		parsed.Zone, r.styles.ZoneClasses(parsed.Zone), parsed.Zone)
	// The zone's semantic meaning travels into the markup as a comment so
	// theme authors can orient themselves in the output.
	fmt.Fprintf(b, "  <!-- %s -->\n", zone.Meaning)

	for _, objectID := range parsed.Objects {
		if err := r.renderObject(b, objectID); err != nil {
			return err
		}
	}

	b.WriteString("</section>\n")
	return nil
}

func (r *Renderer) renderObject(b *strings.Builder, objectID string) error {
	obj, err := r.store.Load(objectID)
	if err != nil {
		return err
	}

	classes := r.styles.ObjectClasses(obj.Type)
	switch obj.Type {
	case "image":
		r.renderImage(b, obj, classes)
	case "text":
		r.renderText(b, obj, classes)
	case "list":
		r.renderList(b, obj, classes)
	case "action":
		r.renderAction(b, obj, classes)
	default:
		// Unknown types render as inert comments instead of breaking the
		// page. Validation catches them long before this is reachable.
		fmt.Fprintf(b, "  <!-- unknown object type: %s -->\n", html.EscapeString(obj.Type))
	}
	return nil
}

func (r *Renderer) renderImage(b *strings.Builder, obj *store.Object, classes string) {
	src := html.EscapeString(attr(obj, "src"))
	alt := html.EscapeString(attr(obj, "alt"))

	fmt.Fprintf(b, "  <figure class=\"object object-image %s\" data-object=\"%s\">\n", classes, obj.ID)
	fmt.Fprintf(b, "    <img src=\"%s\" alt=\"%s\"", src, alt)
	if title := attr(obj, "title"); title != "" {
		fmt.Fprintf(b, " title=\"%s\"", html.EscapeString(title))
	}
	b.WriteString(" loading=\"lazy\">\n")

	if caption := attr(obj, "caption"); caption != "" {
		fmt.Fprintf(b, "    <figcaption>%s</figcaption>\n", html.EscapeString(caption))
	}
	b.WriteString("  </figure>\n")
}

// textTags maps a text object's role to the element it renders as. Roles
// outside the map fall back to a div carrying a role-<role> class.
var textTags = map[string]string{
	"heading":    "h1",
	"subheading": "h2",
	"intro":      "p",
	"paragraph":  "p",
	"note":       "aside",
}

func (r *Renderer) renderText(b *strings.Builder, obj *store.Object, classes string) {
	content := html.EscapeString(attr(obj, "content"))
	role := attr(obj, "role")

	tag, ok := textTags[role]
	if !ok {
		tag = "div"
	}

	fmt.Fprintf(b, "  <%s class=\"object object-text role-%s %s\" data-object=\"%s\">\n",
		tag, role, classes, obj.ID)
	fmt.Fprintf(b, "    %s\n", content)
	fmt.Fprintf(b, "  </%s>\n", tag)
}

func (r *Renderer) renderList(b *strings.Builder, obj *store.Object, classes string) {
	tag := "ul"
	if attr(obj, "list_type") == "ordered" {
		tag = "ol"
	}

	fmt.Fprintf(b, "  <%s class=\"object object-list %s\" data-object=\"%s\">\n", tag, classes, obj.ID)
	if items, ok := obj.Attributes.Get("items").(core.Array); ok {
		for _, item := range items {
			fmt.Fprintf(b, "    <li>%s</li>\n", html.EscapeString(item.String()))
		}
	}
	fmt.Fprintf(b, "  </%s>\n", tag)
}

func (r *Renderer) renderAction(b *strings.Builder, obj *store.Object, classes string) {
	label := html.EscapeString(attr(obj, "label"))

	if attr(obj, "action_type") == "button" {
		fmt.Fprintf(b, "  <button class=\"object object-action action-button %s\" data-object=\"%s\">\n", classes, obj.ID)
		fmt.Fprintf(b, "    %s\n", label)
		b.WriteString("  </button>\n")
		return
	}

	href := html.EscapeString(attr(obj, "href"))
	fmt.Fprintf(b, "  <a href=\"%s\" class=\"object object-action action-link %s\" data-object=\"%s\">\n",
		href, classes, obj.ID)
	fmt.Fprintf(b, "    %s\n", label)
	b.WriteString("  </a>\n")
}

// attr reads a string attribute, treating absence as "".
func attr(obj *store.Object, key string) string {
	s, _ := obj.Attributes.GetString(key)
	return s
}
