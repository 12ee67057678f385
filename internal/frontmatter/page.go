package frontmatter

import (
	"bytes"
	"strconv"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Page is the metadata block prepended to every rendered documentation page.
// Fields are emitted in declaration order.
type Page struct {
	Layout      string
	Indexed     bool
	Title       string
	MenuSlug    string
	DocsSlug    string
	DocsPage    bool
	DocsIndex   bool
	DocsVersion string
	SourceFile  string
	Permalink   string
	Controller  []string
}

// Render returns the page block including both `---` delimiter lines and a
// trailing newline.
func (p Page) Render() (string, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
	}
	add("layout", strNode(p.Layout))
	add("indexed", boolNode(p.Indexed))
	add("title", strNode(p.Title))
	add("menuSlug", strNode(p.MenuSlug))
	add("docsSlug", strNode(p.DocsSlug))
	add("docsPage", boolNode(p.DocsPage))
	add("docsIndex", boolNode(p.DocsIndex))
	add("docsVersion", strNode(p.DocsVersion))
	add("sourceFile", strNode(p.SourceFile))
	add("permalink", strNode(p.Permalink))

	controller := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, item := range p.Controller {
		controller.Content = append(controller.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.SingleQuotedStyle, Value: item})
	}
	add("controller", controller)

	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		_ = enc.Close()
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	buf.WriteString(delimiter + "\n")
	return buf.String(), nil
}

// Prepend returns body with the page block in front of it.
func (p Page) Prepend(body string) (string, error) {
	block, err := p.Render()
	if err != nil {
		return "", err
	}
	return block + body, nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: s}
}

func boolNode(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}
