package docs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/docsbuild/internal/frontmatter"
	"git.home.luguber.info/inful/docsbuild/internal/transform"
)

// ManifestEntry fingerprints one output file.
type ManifestEntry struct {
	Path        string `json:"path"` // relative to the output root
	Fingerprint string `json:"fingerprint"`
}

// Manifest fingerprints a whole output directory. Two builds of unchanged
// sources produce the same Hash.
type Manifest struct {
	Files []ManifestEntry `json:"files"`
	Hash  string          `json:"hash"`
}

// BuildManifest fingerprints every file below dir. HTML pages are
// fingerprinted from their front matter and body, other files by content.
func BuildManifest(dir string) (*Manifest, error) {
	files, err := Collector{}.Collect(dir, Filter{})
	if err != nil {
		return nil, err
	}

	m := &Manifest{Files: make([]ManifestEntry, 0, len(files))}
	for _, file := range files {
		rel, err := relativeTo(dir, file)
		if err != nil {
			return nil, err
		}
		data, err := readFile(file)
		if err != nil {
			return nil, err
		}
		m.Files = append(m.Files, ManifestEntry{Path: rel, Fingerprint: fingerprint(file, data)})
	}
	m.Hash = m.computeHash()
	return m, nil
}

func fingerprint(path string, data []byte) string {
	if transform.IsHTML(path) {
		if doc, err := frontmatter.Split(data); err == nil && doc.HasFrontMatter {
			return mdfp.CalculateFingerprintFromParts(string(doc.FrontMatter), string(doc.Body))
		}
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (m *Manifest) computeHash() string {
	h := sha256.New()
	if len(m.Files) == 0 {
		h.Write([]byte("empty-docs-set"))
	}
	for _, f := range m.Files {
		fmt.Fprintf(h, "%s|%s\n", f.Path, f.Fingerprint)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Lookup returns the entry for a relative path.
func (m *Manifest) Lookup(rel string) (ManifestEntry, bool) {
	rel = filepath.ToSlash(rel)
	for _, f := range m.Files {
		if f.Path == rel {
			return f, true
		}
	}
	return ManifestEntry{}, false
}

func (m *Manifest) ToJSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
