package builtin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/luxweave/luxweave/engine/recipe"
)

// LoadTemplates reads every *.yaml legacy template under dir in lexical
// order, validating each on load.
func LoadTemplates(ctx context.Context, dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("builtin: read template dir: %w", err)
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
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("builtin: read %q: %w", path, err)
		}
		var tpl Template
		if err := yaml.Unmarshal(data, &tpl); err != nil {
			return nil, fmt.Errorf("builtin: decode %q: %w", path, err)
		}
		if err := tpl.Validate(ctx); err != nil {
			return nil, fmt.Errorf("builtin: validate %q: %w", path, err)
		}
		templates = append(templates, &tpl)
	}
	return templates, nil
}

// ConvertAll converts a batch of legacy templates, failing on the first
// malformed template. Builtins are curated, so a bad one is a config bug
// that should stop the build rather than be skipped.
func ConvertAll(templates []*Template) ([]*recipe.EffectRecipe, error) {
	recipes := make([]*recipe.EffectRecipe, 0, len(templates))
	for _, tpl := range templates {
		r, err := ConvertTemplate(tpl)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}
