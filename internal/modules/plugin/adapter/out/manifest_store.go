package out

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"writerly/internal/modules/plugin/domain"
	pluginout "writerly/internal/modules/plugin/port/out"
)

type FileManifestStore struct {
	stateDir string
	path     string
}

// NewFileManifestStore reads <stateDir>/plugins/plugins.json. Relative
// binaries resolve against stateDir.
func NewFileManifestStore(stateDir string) pluginout.ManifestStore {
	return &FileManifestStore{stateDir: stateDir, path: filepath.Join(stateDir, "plugins", "plugins.json")}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read plugin manifest store: %w", err)
	}
	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode plugin manifests: %w", err)
	}
	for i := range manifests {
		if manifests[i].Binary != "" && !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(s.stateDir, manifests[i].Binary))
		}
	}
	return manifests, nil
}
