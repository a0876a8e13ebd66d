// Package config resolves strata CLI settings from defaults, an optional
// strata.yaml or strata.toml, STRATA_* environment variables and flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// EnvConfig names an explicit config file, overriding the search in the
// project directory.
const EnvConfig = "STRATA_CONFIG"

// Config is the decoded configuration.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Render RenderConfig `mapstructure:"render"`
	View   ViewConfig   `mapstructure:"view"`
	Log    LogConfig    `mapstructure:"log"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `mapstructure:"name"`
}

// RenderConfig contains settings for the render command.
type RenderConfig struct {
	Width      int     `mapstructure:"width"`
	Height     int     `mapstructure:"height"`
	Background string  `mapstructure:"background"`
	Scale      float64 `mapstructure:"scale"`
}

// ViewConfig contains settings for the view command.
type ViewConfig struct {
	QuitKeys []string      `mapstructure:"quit_keys"`
	Tick     time.Duration `mapstructure:"tick"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// Resolved is the configuration plus values derived from the project
// directory.
type Resolved struct {
	Config
	Root       string
	ModulePath string
	// File is the config file that was read, or empty.
	File string
}

// Loader collects flag bindings before loading.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a loader with defaults and environment overrides
// installed. STRATA_RENDER_WIDTH overrides render.width, and so on.
func NewLoader() *Loader {
	v := viper.New()
	v.SetDefault("app.name", "")
	v.SetDefault("render.width", 640)
	v.SetDefault("render.height", 480)
	v.SetDefault("render.background", "#000000")
	v.SetDefault("render.scale", 1.0)
	v.SetDefault("view.quit_keys", []string{"ctrl+c", "q"})
	v.SetDefault("view.tick", time.Duration(0))
	v.SetDefault("log.verbose", false)

	v.SetEnvPrefix("STRATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// BindFlag makes f override key when it is set on the command line. A nil
// flag is ignored.
func (l *Loader) BindFlag(key string, f *pflag.Flag) error {
	if f == nil {
		return nil
	}
	if err := l.v.BindPFlag(key, f); err != nil {
		return fmt.Errorf("failed to bind --%s: %w", f.Name, err)
	}
	return nil
}

// Load reads the optional config file for the project containing dir and
// resolves defaults.
func (l *Loader) Load(dir string) (*Resolved, error) {
	root := FindProjectRoot(dir)
	if path := os.Getenv(EnvConfig); path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName("strata")
		l.v.AddConfigPath(root)
	}
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	modulePath := modulePath(root)
	if strings.TrimSpace(cfg.App.Name) == "" {
		cfg.App.Name = defaultAppName(modulePath, root)
	}
	if cfg.Render.Width <= 0 || cfg.Render.Height <= 0 {
		return nil, fmt.Errorf("render size must be positive, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Render.Scale <= 0 {
		return nil, fmt.Errorf("render scale must be positive, got %v", cfg.Render.Scale)
	}

	return &Resolved{
		Config:     cfg,
		Root:       root,
		ModulePath: modulePath,
		File:       l.v.ConfigFileUsed(),
	}, nil
}

// FindProjectRoot walks up from dir to the nearest directory holding a
// strata config file or go.mod. It returns dir itself when neither is
// found.
func FindProjectRoot(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	for d := abs; ; {
		for _, name := range []string{"strata.yaml", "strata.yml", "strata.toml", "go.mod"} {
			if _, err := os.Stat(filepath.Join(d, name)); err == nil {
				return d
			}
		}
		parent := filepath.Dir(d)
		if parent == d {
			return abs
		}
		d = parent
	}
}

func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

// defaultAppName uses the last element of the module path, without any
// major version suffix, falling back to the directory name.
func defaultAppName(modulePath, dir string) string {
	if modulePath != "" {
		if prefix, _, ok := module.SplitPathVersion(modulePath); ok {
			return prefix[strings.LastIndex(prefix, "/")+1:]
		}
	}
	return filepath.Base(dir)
}
