package transform

import (
	"regexp"
	"strings"
	"sync"

	"git.home.luguber.info/inful/docsbuild/internal/project"
)

// Rule rewrites source text.
type Rule interface {
	Apply(content string) string
}

// RegexpRule replaces every match of Pattern with Replacement (regexp.Expand
// syntax).
type RegexpRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

func (r RegexpRule) Apply(content string) string {
	return r.Pattern.ReplaceAllString(content, r.Replacement)
}

// LiteralRule replaces every occurrence of Old with New.
type LiteralRule struct {
	Old string
	New string
}

func (r LiteralRule) Apply(content string) string {
	return strings.ReplaceAll(content, r.Old, r.New)
}

var (
	dialectsMu sync.RWMutex
	dialects   = map[project.Dialect][]Rule{}
)

// RegisterDialect installs the rule set for a dialect, replacing any earlier
// registration.
func RegisterDialect(d project.Dialect, rules []Rule) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[d] = append([]Rule(nil), rules...)
}

// DialectRules returns the rules registered for d. Unknown dialects have no
// rules.
func DialectRules(d project.Dialect) []Rule {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	return dialects[d]
}

// LegacyRules strips inline roles and directives the renderer does not
// understand from old-style documentation. Order matters: the first rule
// swallows everything after a `:code:` role up to and including the newline,
// joining that line with the next one.
func LegacyRules() []Rule {
	return []Rule{
		RegexpRule{Pattern: regexp.MustCompile(`:code:(.*)\n`), Replacement: "${1}"},
		RegexpRule{Pattern: regexp.MustCompile(":php:(.*):`(.*)`"), Replacement: "${2}"},
		RegexpRule{Pattern: regexp.MustCompile(":file:`(.*)`"), Replacement: "${1}"},
		RegexpRule{Pattern: regexp.MustCompile(":code:`(.*)`"), Replacement: "${1}"},
		RegexpRule{Pattern: regexp.MustCompile(":literal:`(.*)`"), Replacement: "${1}"},
		RegexpRule{Pattern: regexp.MustCompile(":token:`(.*)`"), Replacement: "${1}"},
		LiteralRule{Old: ".. productionlist::"},
		LiteralRule{Old: ".. rubric:: Notes"},
		RegexpRule{Pattern: regexp.MustCompile(`\.\. sidebar:: (.*)\n`), Replacement: "${1}"},
	}
}

func init() {
	RegisterDialect(project.DialectCurrent, nil)
	RegisterDialect(project.DialectLegacy, LegacyRules())
}
