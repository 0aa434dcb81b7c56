package render

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/zonal/geometry"
	"github.com/tsawler/zonal/store"
)

// ============================================================
// Fixtures
// ============================================================

func testDocument(t *testing.T) *geometry.Document {
	t.Helper()
	doc, err := geometry.FromRaw(map[string]any{
		"pages": map[string]any{
			"home": map[string]any{
				"name": "Home",
				"zones": map[string]any{
					"Z1": map[string]any{
						"meaning":         "Hero area",
						"allowed_objects": []any{"O1", "O2"},
					},
					"Z2": map[string]any{
						"meaning":         "Main content",
						"allowed_objects": []any{"O3", "O4", "O5", "O9"},
					},
				},
			},
		},
		"object_types": map[string]any{
			"image":  map[string]any{"category": "scalar", "attributes": map[string]any{}},
			"text":   map[string]any{"category": "scalar", "attributes": map[string]any{}},
			"list":   map[string]any{"category": "compound", "attributes": map[string]any{}},
			"action": map[string]any{"category": "interactive", "attributes": map[string]any{}},
		},
		"page_assignments": map[string]any{
			"home": []any{"Z1=O2,O1", "Z2=O3,O4,O5"},
		},
	})
	if err != nil {
		t.Fatalf("building geometry: %v", err)
	}
	return doc
}

func testStore() *store.Store {
	return store.New(store.MemSource{
		"O1": {
			"type":    "image",
			"src":     "/img/cliffs.jpg",
			"alt":     "Cliffs at dusk",
			"caption": "Shot on the <north> coast",
		},
		"O2": {
			"type":    "text",
			"content": "Welcome & hello",
			"role":    "heading",
		},
		"O3": {
			"type":      "list",
			"items":     []any{"one", "two & three"},
			"list_type": "ordered",
		},
		"O4": {
			"type":        "action",
			"label":       "Read more",
			"href":        "/articles",
			"action_type": "link",
		},
		"O5": {
			"type":        "action",
			"label":       "Subscribe",
			"action_type": "button",
		},
		"O9": {
			"type": "carousel",
		},
	})
}

func testStyles() *StyleMap {
	return &StyleMap{
		Zones: map[string]string{
			"Z1": "zone-hero full-width",
			"Z2": "zone-main container",
		},
		Objects: map[string]string{
			"image": "img-responsive",
			"text":  "prose",
		},
	}
}

func renderHome(t *testing.T) string {
	t.Helper()
	r := New(testDocument(t), testStore(), nil, testStyles())
	out, err := r.RenderPage("home")
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	return out
}

// ============================================================
// Structure
// ============================================================

func TestRenderPage_ZoneStructure(t *testing.T) {
	out := renderHome(t)

	for _, want := range []string{
		`<section class="zone Z1 zone-hero full-width" data-zone="Z1">`,
		`<section class="zone Z2 zone-main container" data-zone="Z2">`,
		"<!-- Hero area -->",
		"<!-- Main content -->",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderPage_FollowsAssignmentOrder(t *testing.T) {
	out := renderHome(t)

	// Z1 lists O2 before O1, so the heading must precede the figure even
	// though O1 sorts first lexically.
	heading := strings.Index(out, `data-object="O2"`)
	figure := strings.Index(out, `data-object="O1"`)
	if heading < 0 || figure < 0 {
		t.Fatalf("objects missing from output:\n%s", out)
	}
	if heading > figure {
		t.Errorf("O2 rendered after O1; zone order must follow the assignment")
	}
	if z1, z2 := strings.Index(out, `data-zone="Z1"`), strings.Index(out, `data-zone="Z2"`); z1 > z2 {
		t.Errorf("Z1 rendered after Z2")
	}
}

func TestRenderPage_Deterministic(t *testing.T) {
	r := New(testDocument(t), testStore(), nil, testStyles())

	first, err := r.RenderPage("home")
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	for i := 0; i < 5; i++ {
		next, err := r.RenderPage("home")
		if err != nil {
			t.Fatalf("render %d: %v", i, err)
		}
		if next != first {
			t.Fatalf("render %d differs from the first", i)
		}
	}
}

func TestRenderPage_OutputParses(t *testing.T) {
	out := renderHome(t)

	nodes, err := html.ParseFragment(strings.NewReader(out), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}

	sections := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "section" {
			sections++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	if sections != 2 {
		t.Errorf("got %d <section> elements, want 2", sections)
	}
}

// ============================================================
// Object markup
// ============================================================

func TestRenderPage_ImageMarkup(t *testing.T) {
	out := renderHome(t)

	if !strings.Contains(out, `<img src="/img/cliffs.jpg" alt="Cliffs at dusk" loading="lazy">`) {
		t.Errorf("image tag malformed:\n%s", out)
	}
	if !strings.Contains(out, "<figcaption>Shot on the &lt;north&gt; coast</figcaption>") {
		t.Errorf("caption not escaped:\n%s", out)
	}
	if !strings.Contains(out, `class="object object-image img-responsive"`) {
		t.Errorf("image classes missing:\n%s", out)
	}
}

func TestRenderPage_EscapesContent(t *testing.T) {
	out := renderHome(t)

	if !strings.Contains(out, "Welcome &amp; hello") {
		t.Errorf("text content not escaped:\n%s", out)
	}
	if !strings.Contains(out, "<li>two &amp; three</li>") {
		t.Errorf("list item not escaped:\n%s", out)
	}
}

func TestRenderPage_TextRoles(t *testing.T) {
	tests := []struct {
		role string
		tag  string
	}{
		{"heading", "h1"},
		{"subheading", "h2"},
		{"intro", "p"},
		{"paragraph", "p"},
		{"note", "aside"},
		{"sidebar", "div"},
	}
	doc := testDocument(t)
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			st := store.New(store.MemSource{
				"O2": {"type": "text", "content": "x", "role": tt.role},
				"O1": {"type": "image", "src": "/a.jpg", "alt": "a"},
				"O3": {"type": "list", "items": []any{}},
				"O4": {"type": "action", "label": "x", "href": "/"},
				"O5": {"type": "action", "label": "x", "href": "/"},
			})
			out, err := New(doc, st, nil, nil).RenderPage("home")
			if err != nil {
				t.Fatalf("RenderPage: %v", err)
			}
			open := "<" + tt.tag + ` class="object object-text role-` + tt.role
			if !strings.Contains(out, open) {
				t.Errorf("role %q: missing %q in:\n%s", tt.role, open, out)
			}
			if !strings.Contains(out, "</"+tt.tag+">") {
				t.Errorf("role %q: missing closing tag", tt.role)
			}
		})
	}
}

func TestRenderPage_ListTypes(t *testing.T) {
	out := renderHome(t)

	if !strings.Contains(out, `<ol class="object object-list `) {
		t.Errorf("ordered list did not render as <ol>:\n%s", out)
	}
}

func TestRenderPage_Actions(t *testing.T) {
	out := renderHome(t)

	if !strings.Contains(out, `<a href="/articles" class="object object-action action-link `) {
		t.Errorf("link action malformed:\n%s", out)
	}
	if !strings.Contains(out, `<button class="object object-action action-button `) {
		t.Errorf("button action malformed:\n%s", out)
	}
}

func TestRenderPage_UnknownTypeIsInertComment(t *testing.T) {
	doc, err := geometry.FromRaw(map[string]any{
		"pages": map[string]any{
			"home": map[string]any{
				"name": "Home",
				"zones": map[string]any{
					"Z1": map[string]any{
						"meaning":         "Hero",
						"allowed_objects": []any{"O9"},
					},
				},
			},
		},
		"object_types": map[string]any{},
		"page_assignments": map[string]any{
			"home": []any{"Z1=O9"},
		},
	})
	if err != nil {
		t.Fatalf("building geometry: %v", err)
	}

	out, err := New(doc, testStore(), nil, nil).RenderPage("home")
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	if !strings.Contains(out, "<!-- unknown object type: carousel -->") {
		t.Errorf("unknown type did not degrade to a comment:\n%s", out)
	}
}

// ============================================================
// Style map behavior
// ============================================================

func TestStyleMap_MissingEntriesDegrade(t *testing.T) {
	m := &StyleMap{Zones: map[string]string{"Z1": "a"}}

	if got := m.ZoneClasses("Z9"); got != "" {
		t.Errorf("ZoneClasses(Z9) = %q, want empty", got)
	}
	if got := m.ObjectClasses("image"); got != "" {
		t.Errorf("ObjectClasses(image) = %q, want empty", got)
	}

	var nilMap *StyleMap
	if got := nilMap.ZoneClasses("Z1"); got != "" {
		t.Errorf("nil map ZoneClasses = %q, want empty", got)
	}
}

// ============================================================
// Failure modes
// ============================================================

func TestRenderPage_Errors(t *testing.T) {
	r := New(testDocument(t), testStore(), nil, nil)

	tests := []struct {
		name   string
		pageID string
	}{
		{"unknown page", "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.RenderPage(tt.pageID); err == nil {
				t.Errorf("RenderPage(%q) succeeded, want error", tt.pageID)
			}
		})
	}
}

func TestRenderPage_MissingObjectFails(t *testing.T) {
	doc := testDocument(t)
	st := store.New(store.MemSource{})

	if _, err := New(doc, st, nil, nil).RenderPage("home"); err == nil {
		t.Error("rendering with an empty store succeeded, want error")
	}
}
