package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Matcher  MatcherConfig
	Report   ReportConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// MatcherConfig holds cross-sheet reconciliation settings. LinkCountAliases
// is the ordered list of column spellings accepted for the link-count field;
// the metrics sheet has renamed that column repeatedly and old exports still
// carry the old names.
type MatcherConfig struct {
	LinkCountAliases []string `mapstructure:"link_count_aliases"`
	MinSubstringLen  int      `mapstructure:"min_substring_len"`
	MinWordLen       int      `mapstructure:"min_word_len"`
	MinSharedWords   int      `mapstructure:"min_shared_words"`
}

// ReportConfig holds reporting settings.
type ReportConfig struct {
	RunningQuarters int `mapstructure:"running_quarters"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Timezone string
	Debug    bool
}

// Load reads configuration from file and env. Env var overrides use prefix STUDYCAL_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "studycal", "studycal.db"))
	v.SetDefault("matcher.link_count_aliases", []string{
		"link count", "links", "total links", "live links", "link_count", "# of links",
	})
	v.SetDefault("matcher.min_substring_len", 20)
	v.SetDefault("matcher.min_word_len", 4)
	v.SetDefault("matcher.min_shared_words", 3)
	v.SetDefault("report.running_quarters", 4)
	v.SetDefault("ui.timezone", "America/Chicago")
	v.SetDefault("ui.debug", false)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("STUDYCAL_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "studycal"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("STUDYCAL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the TUI settings view for non-sensitive preferences.
func Save(cfg Config) error {
	path := os.Getenv("STUDYCAL_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "studycal", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("matcher.link_count_aliases", cfg.Matcher.LinkCountAliases)
	v.Set("matcher.min_substring_len", cfg.Matcher.MinSubstringLen)
	v.Set("matcher.min_word_len", cfg.Matcher.MinWordLen)
	v.Set("matcher.min_shared_words", cfg.Matcher.MinSharedWords)
	v.Set("report.running_quarters", cfg.Report.RunningQuarters)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("ui.debug", cfg.UI.Debug)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
