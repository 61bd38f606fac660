package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// fileConfig is the on-disk CLI configuration. Every value acts as a
// default for the matching flag; flags set on the command line win.
//
// Example config.toml:
//
//	[generate]
//	size = 240
//	variant = "charsquare"
//	border = "#2c3e50"
//	palette = "material"
//
//	[serve]
//	addr = ":8080"
//	cache = "file"
type fileConfig struct {
	Generate generateConfig `toml:"generate"`
	Serve    serveConfig    `toml:"serve"`
}

// generateConfig holds defaults for the generate command.
type generateConfig struct {
	Size       int    `toml:"size"`
	Variant    string `toml:"variant"`
	Border     string `toml:"border"`
	Background string `toml:"background"`
	FontColor  string `toml:"font_color"`
	Font       string `toml:"font"`
	Palette    string `toml:"palette"`
	Out        string `toml:"out"`
}

// serveConfig holds defaults for the serve command.
type serveConfig struct {
	Addr      string `toml:"addr"`
	Cache     string `toml:"cache"`
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
}

// defaultConfigPath returns the standard config file location.
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// loadConfig reads the TOML config at path. An empty path falls back to
// the standard location; a missing file yields the zero config.
func loadConfig(path string) (*fileConfig, error) {
	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return &fileConfig{}, nil
		}
		path = p
	}

	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return &fileConfig{}, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// withConfig returns a new context with the file config attached.
func withConfig(ctx context.Context, cfg *fileConfig) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext retrieves the file config from ctx, or the zero config
// if none is attached.
func configFromContext(ctx context.Context) *fileConfig {
	if cfg, ok := ctx.Value(configKey).(*fileConfig); ok {
		return cfg
	}
	return &fileConfig{}
}

// stringDefault fills target with fallback when the flag was left unset.
func stringDefault(target *string, changed bool, fallback string) {
	if !changed && fallback != "" {
		*target = fallback
	}
}

// intDefault fills target with fallback when the flag was left unset.
func intDefault(target *int, changed bool, fallback int) {
	if !changed && fallback != 0 {
		*target = fallback
	}
}
