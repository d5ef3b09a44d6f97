package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/compact"
	"github.com/aretw0/compact/pkg/domain"
	"github.com/aretw0/compact/pkg/manifest"
	"github.com/aretw0/compact/pkg/plugins"
	"github.com/aretw0/compact/pkg/registry"
)

// createEngine loads the manifest named by opts and compiles it with the
// standard CLI conventions. hooks receive the events of the engine and the
// warnings of the builtin plugins.
func createEngine(opts Options, logger *slog.Logger, hooks ...domain.Hooks) (*compact.Engine, error) {
	path, err := resolveManifest(opts.File)
	if err != nil {
		return nil, err
	}

	m, err := manifest.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error loading manifest %s: %w", path, err)
	}

	var all domain.Hooks
	if opts.Debug {
		all = createDebugHooks(logger)
	}
	for _, h := range hooks {
		all = all.Merge(h)
	}

	def, err := m.Build(registry.Builtin(plugins.WithLogger(logger), plugins.WithHooks(all)))
	if err != nil {
		return nil, fmt.Errorf("error building manifest %s: %w", path, err)
	}

	name := m.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return compact.Create(def,
		compact.WithName(name),
		compact.WithLogger(logger),
		compact.WithHooks(all),
	), nil
}

// manifestNames are tried in order when the manifest path is a directory.
var manifestNames = []string{"compact.yaml", "compact.yml", "manifest.yaml", "manifest.yml"}

// resolveManifest returns path itself when it is a file. For a directory it
// returns the first conventional manifest it contains, falling back to a
// file named after the directory ("todos/todos.yaml").
func resolveManifest(path string) (string, error) {
	if path == "" {
		path = "."
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("manifest not found: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	candidates := append(slices.Clone(manifestNames), filepath.Base(abs)+".yaml")
	for _, name := range candidates {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no manifest in %s (looked for %s)", path, strings.Join(candidates, ", "))
}
