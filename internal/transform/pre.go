package transform

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultSidebar is used when a project ships no sidebar.rst.
const DefaultSidebar = ".. toctree::\n    :depth: 3\n    :glob:\n\n    *"

const pageTemplate = `.. raw:: html
    {% block sidebar %}

{{ sidebar }}

.. raw:: html
    {% endblock %}


.. raw:: html
    {% block content %}

{% verbatim %}

{{ content }}

{% endverbatim %}

.. raw:: html
    {% endblock %}

`

var commonFixes = strings.NewReplacer(
	".. Note::", ".. note::",
	":maxdepth:", ":depth:",
	".. include:: toc.rst", "",
)

// Document is a source file read during staging. RelPath is relative to the
// locale root and uses forward slashes.
type Document struct {
	RelPath string
	Content string
}

// SourceMarker returns the provenance marker appended to staged content.
func SourceMarker(relPath string) string {
	return fmt.Sprintf("{{ SOURCE_FILE:%s }}", SourcePath(relPath))
}

// SourcePath returns the locale-qualified source path recorded in front
// matter, e.g. "/en/reference/intro.rst".
func SourcePath(relPath string) string {
	return "/en/" + strings.TrimPrefix(filepath.ToSlash(relPath), "/")
}

// Pre prepares a source document for conversion: it normalizes common
// directive spellings, applies the dialect rules, wraps the result in the
// page template together with the sidebar and appends the source marker.
func Pre(doc Document, sidebar string, rules []Rule) string {
	content := commonFixes.Replace(strings.TrimSpace(doc.Content))
	for _, rule := range rules {
		content = rule.Apply(content)
	}

	wrapped := strings.NewReplacer(
		"{{ sidebar }}", sidebar,
		"{{ content }}", content,
	).Replace(pageTemplate)

	return wrapped + SourceMarker(doc.RelPath) + "\n"
}
