package main

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// wrapDocument embeds rendered zone markup in a complete HTML document:
// doctype, head with generator meta, a skip link for keyboard users, and a
// footer. The zone markup itself is trusted; it was produced by the
// renderer, not by content authors.
func wrapDocument(pageID, markup string) string {
	var b strings.Builder
	title := html.EscapeString(pageID)

	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"en\">\n<head>\n")
	b.WriteString("  <meta charset=\"utf-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "  <meta name=\"generator\" content=\"zonal %s\">\n", version)
	fmt.Fprintf(&b, "  <title>%s</title>\n", title)
	b.WriteString("  <link rel=\"stylesheet\" href=\"/assets/css/styles.css\">\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString("<a class=\"skip-link\" href=\"#main\">Skip to content</a>\n")
	fmt.Fprintf(&b, "<main id=\"main\" data-page=\"%s\">\n", html.EscapeString(pageID))
	b.WriteString(markup)
	b.WriteString("</main>\n")
	b.WriteString("<footer class=\"site-footer\">\n")
	fmt.Fprintf(&b, "  <p>Rendered by zonal %s</p>\n", version)
	b.WriteString("</footer>\n")
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// errorDocument renders the page shown when validation fails. The report
// is author-facing text and gets escaped wholesale.
func errorDocument(pageID, report string) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"en\">\n<head>\n")
	b.WriteString("  <meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "  <title>Validation failed: %s</title>\n", html.EscapeString(pageID))
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>Page %s failed validation</h1>\n", html.EscapeString(pageID))
	b.WriteString("<p>The page was not rendered. Fix the findings below and try again.</p>\n")
	fmt.Fprintf(&b, "<pre class=\"validation-report\">%s</pre>\n", html.EscapeString(report))
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
