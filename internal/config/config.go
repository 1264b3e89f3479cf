// Package config loads slide.toml, the project-level settings file. The lsp
// subcommand reads its lint toggle, emit-config options, and
// document-parser templates for embedding slide programs in other file
// types; the root command does not read slide.toml. Grounded on teacher vovakirdan-surge's cmd/surge/project_manifest.go
// (toml.DecodeFile + meta.IsDefined validation) and internal/project/root.go
// (walk-upward search for the manifest file).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"slide/internal/emit"
)

// FileName is the manifest slide looks for, analogous to surge.toml.
const FileName = "slide.toml"

// Config is the decoded contents of slide.toml.
type Config struct {
	// OutputForm is the [emit].output_form setting. The root command's
	// -o/--output-form flag does not read it.
	OutputForm emit.Format
	// Emit carries the default --emit-config options.
	Emit emit.Config
	// LintEnabled toggles the linter and the post-evaluation V0002
	// (maybe-incompatible definitions) check, mirroring
	// program.ProgramContext.LintEnabled; V0001 is reported either way.
	LintEnabled bool
	// DocumentParsers mirrors the LSP initializationOptions.document_parsers
	// contract (§6); the lsp subcommand installs them on its registry when
	// non-empty.
	DocumentParsers map[string]string
	// CacheDir is the [cache].dir setting. The root command's --cache-dir
	// flag does not read it.
	CacheDir string
}

// fileFormat is the raw TOML shape; Config.OutputForm and Config.Emit are
// derived from it after decoding, since emit.Format/Config are not
// themselves TOML-friendly string enums.
type fileFormat struct {
	Emit struct {
		OutputForm string   `toml:"output_form"`
		Options    []string `toml:"options"`
	} `toml:"emit"`
	Lint struct {
		Enabled *bool `toml:"enabled"`
	} `toml:"lint"`
	DocumentParsers map[string]string `toml:"document_parsers"`
	Cache           struct {
		Dir string `toml:"dir"`
	} `toml:"cache"`
}

// Default returns the settings used when no slide.toml is found.
func Default() Config {
	return Config{
		OutputForm:      emit.Pretty,
		LintEnabled:     true,
		DocumentParsers: map[string]string{},
	}
}

// Load decodes path into a Config, starting from Default() so a manifest
// only needs to set the fields it wants to override.
func Load(path string) (Config, error) {
	var raw fileFormat
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg := Default()
	if raw.Emit.OutputForm != "" {
		form, ok := emit.ParseFormat(raw.Emit.OutputForm)
		if !ok {
			return Config{}, fmt.Errorf("%s: [emit].output_form: unrecognized form %q", path, raw.Emit.OutputForm)
		}
		cfg.OutputForm = form
	}
	for _, opt := range raw.Emit.Options {
		cfg.Emit = emit.ParseConfigOpt(cfg.Emit, opt)
	}
	if raw.Lint.Enabled != nil {
		cfg.LintEnabled = *raw.Lint.Enabled
	}
	if len(raw.DocumentParsers) > 0 {
		cfg.DocumentParsers = raw.DocumentParsers
	}
	cfg.CacheDir = raw.Cache.Dir
	return cfg, nil
}

// Find walks upward from startDir looking for slide.toml, the same upward
// search teacher's project.FindSurgeToml performs for surge.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadFromDir finds and loads slide.toml starting at startDir, falling back
// to Default() if none exists.
func LoadFromDir(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
