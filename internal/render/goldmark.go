package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/docsbuild/internal/logfields"
)

const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

// GoldmarkBuilder renders documents in-process. It understands the subset of
// reStructuredText that is also valid CommonMark (paragraphs, underlined
// section titles, literal blocks, lists, inline markup) and passes the rest
// through as text.
type GoldmarkBuilder struct {
	md        goldmark.Markdown
	documents []Document
}

func NewGoldmarkBuilder() *GoldmarkBuilder {
	return &GoldmarkBuilder{md: newMarkdown()}
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(&headingRenderer{}, 100)),
		),
	)
}

func (b *GoldmarkBuilder) Recreate() Builder {
	return &GoldmarkBuilder{md: b.md}
}

// Documents returns every document rendered since the builder was created.
func (b *GoldmarkBuilder) Documents() []Document {
	return append([]Document(nil), b.documents...)
}

func (b *GoldmarkBuilder) Build(ctx context.Context, inputDir, outputDir string, opts Options) ([]Rendered, error) {
	rels, err := listInputs(inputDir, opts.Recursive)
	if err != nil {
		return nil, fmt.Errorf("list inputs: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, err
	}

	rendered := make([]Rendered, 0, len(rels))
	for _, rel := range rels {
		if err := ctx.Err(); err != nil {
			return rendered, err
		}
		src := filepath.Join(inputDir, filepath.FromSlash(rel))
		if !isSource(rel) {
			if err := copyFile(src, filepath.Join(outputDir, filepath.FromSlash(rel))); err != nil {
				return rendered, err
			}
			continue
		}

		source, err := os.ReadFile(src)
		if err != nil {
			return rendered, err
		}
		page, title, err := b.convert(source)
		if err != nil {
			return rendered, fmt.Errorf("%w: %s: %w", ErrRenderFailed, rel, err)
		}

		outRel := outputRel(rel, ".html")
		dst := filepath.Join(outputDir, filepath.FromSlash(outRel))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return rendered, err
		}
		if err := os.WriteFile(dst, page, 0o644); err != nil {
			return rendered, err
		}
		if opts.Verbose {
			slog.Debug("Rendered document", logfields.Source(rel), logfields.File(outRel))
		}

		b.documents = append(b.documents, Document{Source: rel, Output: outRel, Title: title})
		rendered = append(rendered, Rendered{Output: dst, Source: rel})
	}

	if err := writeMeta(outputDir, b.documents); err != nil {
		return rendered, err
	}
	return rendered, nil
}

func (b *GoldmarkBuilder) convert(source []byte) ([]byte, string, error) {
	pctx := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	doc := b.md.Parser().Parse(text.NewReader(source), parser.WithContext(pctx))
	title := firstTitle(doc, source)

	var body bytes.Buffer
	if err := b.md.Renderer().Render(&body, source, doc); err != nil {
		return nil, "", err
	}
	return fmt.Appendf(nil, htmlShell, util.EscapeHTML([]byte(title)), body.Bytes()), title, nil
}

func firstTitle(doc ast.Node, source []byte) string {
	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			title = nodeText(h, source)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}

func nodeText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// headingRenderer emits an empty anchor carrying the heading id in front of
// each heading instead of an id attribute on the heading itself.
type headingRenderer struct{}

func (r *headingRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
}

func (r *headingRenderer) renderHeading(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	if !entering {
		_, _ = fmt.Fprintf(w, "</h%d>\n", n.Level)
		return ast.WalkContinue, nil
	}
	if id, ok := n.AttributeString("id"); ok {
		if raw, ok := id.([]byte); ok {
			_, _ = w.WriteString(`<a id="`)
			_, _ = w.Write(util.EscapeHTML(raw))
			_, _ = w.WriteString(`"></a>`)
		}
	}
	_, _ = fmt.Fprintf(w, "<h%d>", n.Level)
	return ast.WalkContinue, nil
}
