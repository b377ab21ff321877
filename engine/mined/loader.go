package mined

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

// LoadTemplates reads every *.yaml template under dir, validated on load.
// Files are read in lexical order so batch order is reproducible.
func LoadTemplates(ctx context.Context, dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("mined: read template dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	templates := make([]*Template, 0, len(names))
	for _, name := range names {
		tpl, err := loadTemplateFile(ctx, filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, nil
}

func loadTemplateFile(ctx context.Context, path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mined: read %q: %w", path, err)
	}
	var tpl Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("mined: decode %q: %w", path, err)
	}
	if err := tpl.Validate(ctx); err != nil {
		return nil, fmt.Errorf("mined: validate %q: %w", path, err)
	}
	return &tpl, nil
}

// LoadFingerprint reads a single style fingerprint file.
func LoadFingerprint(ctx context.Context, path string) (*StyleFingerprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mined: read fingerprint %q: %w", path, err)
	}
	var fp StyleFingerprint
	if err := yaml.Unmarshal(data, &fp); err != nil {
		return nil, fmt.Errorf("mined: decode fingerprint %q: %w", path, err)
	}
	if err := fp.Validate(ctx); err != nil {
		return nil, fmt.Errorf("mined: validate fingerprint %q: %w", path, err)
	}
	return &fp, nil
}
