package render

import (
	"encoding/json"
	"os"
	"path/filepath"
)

func writeMeta(outputDir string, documents []Document) error {
	if documents == nil {
		documents = []Document{}
	}
	data, err := json.MarshalIndent(documents, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, MetaFile), append(data, '\n'), 0o644)
}
