package platform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/permasync/pkg/core"
)

// FileConfig is the on-disk configuration (.permasync.yml).
// Every field is optional; explicit options override file values.
type FileConfig struct {
	Backend    string   `yaml:"backend"`
	ContentDir string   `yaml:"content_dir"`
	Extension  string   `yaml:"extension"`
	Key        string   `yaml:"key"`
	Remote     string   `yaml:"remote"`
	Conflict   string   `yaml:"conflict"`
	Include    []string `yaml:"include"`
	Exclude    []string `yaml:"exclude"`
}

// LoadConfig reads a YAML config file. Unknown keys are rejected.
// A missing file is only an error when required is true.
func LoadConfig(path string, required bool) (FileConfig, error) {
	var fc FileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return fc, nil
		}
		return fc, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fc, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return fc, nil
}

// applyFile copies the non-empty file values into o.
func (o *options) applyFile(fc FileConfig) {
	if fc.Backend != "" {
		o.backend = fc.Backend
	}
	if fc.ContentDir != "" {
		o.scope.Dir = fc.ContentDir
	}
	if fc.Extension != "" {
		o.scope.Ext = fc.Extension
	}
	if fc.Key != "" {
		o.key = fc.Key
	}
	if fc.Remote != "" {
		o.remote = fc.Remote
	}
	if fc.Conflict != "" {
		o.conflict = fc.Conflict
	}
	if len(fc.Include) > 0 {
		o.scope.Include = fc.Include
	}
	if len(fc.Exclude) > 0 {
		o.scope.Exclude = fc.Exclude
	}
}

// configPath resolves the config file against root.
func (o *options) configPath(root string) (string, bool) {
	if o.configFile == "" {
		return filepath.Join(root, DefaultConfigFile), false
	}
	if filepath.IsAbs(o.configFile) {
		return o.configFile, true
	}
	return filepath.Join(root, o.configFile), true
}

// ResolveBaseline picks the revision HEAD is compared against.
// An explicit baseline wins; a pull-request base branch maps to its
// remote-tracking ref; otherwise the parent of HEAD is used.
func ResolveBaseline(explicit, baseRef, remote string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit
	}
	if baseRef = strings.TrimSpace(baseRef); baseRef != "" {
		if remote == "" {
			return baseRef
		}
		return remote + "/" + baseRef
	}
	return core.HeadRevision + "~1"
}
