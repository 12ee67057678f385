package transform

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/docsbuild/internal/frontmatter"
)

// ErrMissingSourceMarker is returned when an HTML page carries neither a
// source marker nor builder provenance.
var ErrMissingSourceMarker = errors.New("rendered page has no source marker")

var (
	bodyPattern   = regexp.MustCompile(`(?s)<body[^>]*>(.*)</body>`)
	markerPattern = regexp.MustCompile(`(?:<p>)?\{\{ SOURCE_FILE:(.+?) \}\}(?:</p>)?`)
	anchorRules   = buildAnchorRules()
)

func buildAnchorRules() []RegexpRule {
	rules := make([]RegexpRule, 0, 6)
	for level := 1; level <= 6; level++ {
		rules = append(rules, RegexpRule{
			Pattern: regexp.MustCompile(fmt.Sprintf(`<a id="([^"]*)"></a><h%d>(.*?)</h%d>`, level, level)),
			Replacement: fmt.Sprintf(
				`<a class="section-anchor" id="${1}" name="${1}"></a><h%d class="section-header"><a href="#${1}">${2}<i class="fas fa-link"></i></a></h%d>`,
				level, level),
		})
	}
	return rules
}

// PostInput is one rendered file awaiting finalization.
type PostInput struct {
	Path    string // output path, decides HTML handling and the index flag
	Content string
	// Provenance is the source path reported by the renderer, in SourcePath
	// form. Empty when the renderer does not report one.
	Provenance string
	// Page carries the constant front-matter fields. Title, SourceFile and
	// DocsIndex are filled in by Post.
	Page frontmatter.Page
}

// PostResult is the finalized file content.
type PostResult struct {
	Content    string
	Title      string
	SourceFile string
	Rewritten  bool
}

// IsHTML reports whether path names an HTML output file.
func IsHTML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".html")
}

// IsIndexPage reports whether path is a directory index page. Only files
// named exactly index.html qualify; generated pages such as genindex.html
// are regular pages.
func IsIndexPage(path string) bool {
	return filepath.Base(path) == "index.html"
}

// Post finalizes a rendered file. Non-HTML files are returned unchanged.
// HTML files are reduced to their body, get permalink anchors on headings,
// lose their source marker and gain a front-matter block.
func Post(in PostInput) (PostResult, error) {
	if !IsHTML(in.Path) {
		return PostResult{Content: in.Content}, nil
	}

	content := strings.TrimSpace(in.Content)
	title := ExtractTitle(content)
	content = RewriteAnchors(content)
	content = ExtractBody(content)

	content, marker := StripSourceMarker(content)
	source := in.Provenance
	if source == "" {
		source = marker
	}
	if source == "" {
		return PostResult{}, fmt.Errorf("%w: %s", ErrMissingSourceMarker, in.Path)
	}

	page := in.Page
	page.Title = title
	page.SourceFile = source
	page.DocsIndex = IsIndexPage(in.Path)

	out, err := page.Prepend(content)
	if err != nil {
		return PostResult{}, fmt.Errorf("render front matter for %s: %w", in.Path, err)
	}
	return PostResult{
		Content:    out,
		Title:      title,
		SourceFile: source,
		Rewritten:  true,
	}, nil
}

// ExtractTitle returns the text of the first <h1>, or "" when there is none.
func ExtractTitle(content string) string {
	if !strings.Contains(content, "<h1") {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return ""
	}
	h1 := findFirst(doc, atom.H1)
	if h1 == nil {
		return ""
	}
	var b strings.Builder
	collectText(h1, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// RewriteAnchors turns `<a id="X"></a><hN>T</hN>` pairs into linked section
// headers.
func RewriteAnchors(content string) string {
	for _, rule := range anchorRules {
		content = rule.Apply(content)
	}
	return content
}

// ExtractBody returns the inner HTML of <body>, or content unchanged when
// there is no body element.
func ExtractBody(content string) string {
	m := bodyPattern.FindStringSubmatch(content)
	if m == nil {
		return content
	}
	return m[1]
}

// StripSourceMarker removes the last source marker from content and returns
// the recorded path. The path is "" when no marker is present.
func StripSourceMarker(content string) (string, string) {
	matches := markerPattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, ""
	}
	last := matches[len(matches)-1]
	path := content[last[2]:last[3]]
	stripped := strings.TrimSpace(content[:last[0]]+content[last[1]:]) + "\n"
	return stripped, path
}
