package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads an entire catalog tree from disk.
//
// Layout: <basePath>/providers/<provider>/provider.yaml plus one YAML file per
// offering under <basePath>/providers/<provider>/models/.
func Load(basePath string) ([]Offering, error) {
	providersDir := filepath.Join(basePath, "providers")
	entries, err := os.ReadDir(providersDir)
	if err != nil {
		return nil, fmt.Errorf("reading providers dir: %w", err)
	}

	var offerings []Offering
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		providerName := entry.Name()
		loaded, err := loadProvider(providersDir, providerName)
		if err != nil {
			return nil, fmt.Errorf("loading provider %s: %w", providerName, err)
		}
		offerings = append(offerings, loaded...)
	}

	sort.Slice(offerings, func(i, j int) bool {
		return offerings[i].Key() < offerings[j].Key()
	})
	return offerings, nil
}

func loadProvider(providersDir, name string) ([]Offering, error) {
	providerDir := filepath.Join(providersDir, name)

	var info ProviderInfo
	providerFile := filepath.Join(providerDir, "provider.yaml")
	if data, err := os.ReadFile(providerFile); err == nil {
		if err := yaml.Unmarshal(data, &info); err != nil {
			return nil, fmt.Errorf("parsing provider.yaml: %w", err)
		}
	}
	if info.Name == "" {
		info.Name = name
	}

	modelsDir := filepath.Join(providerDir, "models")
	if _, err := os.Stat(modelsDir); os.IsNotExist(err) {
		return nil, nil // Provider directory without offerings yet
	}

	modelFiles, err := os.ReadDir(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("reading models dir: %w", err)
	}

	var offerings []Offering
	for _, f := range modelFiles {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(modelsDir, f.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name(), err)
		}

		var o Offering
		if err := yaml.Unmarshal(data, &o); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f.Name(), err)
		}
		if o.Provider == "" {
			o.Provider = info.Name
		}
		offerings = append(offerings, o)
	}

	return offerings, nil
}
