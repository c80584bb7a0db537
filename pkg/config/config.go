// Package config loads the shellup run configuration. Values are merged
// with priority: defaults < config file (YAML, or TOML by extension) <
// SHELLUP_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/shellup/shellup/pkg/errors"
	"github.com/shellup/shellup/pkg/types"
)

// Default installer one-liners, overridable per config file.
const (
	DefaultOmzInstaller  = `sh -c "$(curl -fsSL https://raw.githubusercontent.com/ohmyzsh/ohmyzsh/master/tools/install.sh)" "" --unattended`
	DefaultPixiInstaller = `curl -fsSL https://pixi.sh/install.sh | bash`
)

// Config is the run configuration for a bootstrap.
type Config struct {
	// BackupZshrc controls whether the existing ~/.zshrc is backed up
	// before being replaced.
	BackupZshrc bool `koanf:"backup_zshrc" yaml:"backup_zshrc"`

	// CustomZshrc is the path to the zshrc template copied into place.
	CustomZshrc string `koanf:"custom_zshrc" yaml:"custom_zshrc"`

	// Proxy, when set, is exported as http_proxy/https_proxy for every
	// external command.
	Proxy string `koanf:"proxy" yaml:"proxy,omitempty"`

	// ZshPlugins are cloned into $ZSH/custom/plugins, in order.
	ZshPlugins []types.Plugin `koanf:"zsh_plugins" yaml:"zsh_plugins"`

	// PixiPackages are installed globally with pixi, in order.
	PixiPackages []string `koanf:"pixi_packages" yaml:"pixi_packages"`

	// AdditionalConfigs are appended verbatim to the generated zshrc.
	AdditionalConfigs []string `koanf:"additional_configs" yaml:"additional_configs"`

	// OmzInstaller and PixiInstaller are the shell one-liners that fetch
	// and run the upstream installers.
	OmzInstaller  string `koanf:"omz_installer" yaml:"omz_installer,omitempty"`
	PixiInstaller string `koanf:"pixi_installer" yaml:"pixi_installer,omitempty"`
}

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{
		BackupZshrc:   true,
		OmzInstaller:  DefaultOmzInstaller,
		PixiInstaller: DefaultPixiInstaller,
	}
}

func defaultsMap() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"backup_zshrc":   d.BackupZshrc,
		"omz_installer":  d.OmzInstaller,
		"pixi_installer": d.PixiInstaller,
	}
}

// Load reads the configuration file at path and merges it over the
// defaults and under SHELLUP_* environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "configuration file %s not found", path)
	}

	parser := parserFor(path)
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}

	if err := k.Load(env.Provider("SHELLUP_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SHELLUP_"))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to decode %s", path)
	}

	return &cfg, nil
}

func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ktoml.Parser()
	}
	return kyaml.Parser()
}

// Validate checks that the configuration can drive a full bootstrap.
func (c *Config) Validate() error {
	if c.CustomZshrc == "" {
		return errors.New(errors.ErrConfigInvalid, "custom_zshrc must be set")
	}
	for i, p := range c.ZshPlugins {
		if p.Name == "" || p.Repo == "" {
			return errors.Newf(errors.ErrConfigInvalid, "zsh_plugins[%d] needs both name and repo", i)
		}
	}
	return nil
}
