package config

import "git.home.luguber.info/inful/docsbuild/internal/foundation/normalization"

// RendererKind selects the render.Builder implementation.
type RendererKind string

const (
	RendererGoldmark RendererKind = "goldmark"
	RendererCommand  RendererKind = "command"
)

var rendererKindNormalizer = normalization.NewNormalizer(map[string]RendererKind{
	"goldmark": RendererGoldmark,
	"builtin":  RendererGoldmark,
	"command":  RendererCommand,
	"external": RendererCommand,
}, RendererGoldmark)

// ParseRendererKind validates a configured renderer kind.
func ParseRendererKind(raw string) (RendererKind, error) {
	return rendererKindNormalizer.Parse(raw)
}

// DefaultRendererCommand is the external converter invoked per document.
var DefaultRendererCommand = []string{"rst2html5", "{input}", "{output}"}
