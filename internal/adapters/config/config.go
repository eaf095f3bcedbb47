package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/kahadb-trace/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".kahadb-trace"
	envPrefix  = "KTA"

	KeyConcise = "concise"
	KeyVerbose = "verbose"
	KeyMarker  = "marker"
	KeyLogDir  = "log.dir"
	KeyLogFile = "log.file"

	DefaultLogDir  = "."
	DefaultLogFile = "kahadb.log"
)

type Config struct {
	Concise bool
	Verbose bool
	Marker  string
	LogDir  string
	LogFile string
	// Source is the config file that was read, empty when none was found.
	Source string
}

// Load resolves configuration from flags already bound to cfg, KTA_*
// environment variables, an optional TOML file and defaults, in that order.
// An explicit configFile must exist; the default one is optional.
func Load(cfg *viper.Viper, configFile string) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(KeyConcise, "false")
	cfg.SetDefault(KeyVerbose, false)
	cfg.SetDefault(KeyMarker, domain.DefaultMarker)
	cfg.SetDefault(KeyLogDir, DefaultLogDir)
	cfg.SetDefault(KeyLogFile, DefaultLogFile)

	if configFile != "" {
		cfg.SetConfigFile(configFile)
	} else {
		cfg.SetConfigName(configName)
		cfg.SetConfigType(configType)
		if homeDir, err := os.UserHomeDir(); err == nil {
			cfg.AddConfigPath(filepath.Join(homeDir, configDir))
		}
	}

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("%w: read config file: %w", domain.ErrConfig, err)
		}
	}

	marker := strings.TrimSpace(cfg.GetString(KeyMarker))
	if marker == "" {
		return Config{}, fmt.Errorf("%w: %s must not be empty", domain.ErrConfig, KeyMarker)
	}

	return Config{
		Concise: ParseConcise(cfg.GetString(KeyConcise)),
		Verbose: cfg.GetBool(KeyVerbose),
		Marker:  marker,
		LogDir:  cfg.GetString(KeyLogDir),
		LogFile: cfg.GetString(KeyLogFile),
		Source:  cfg.ConfigFileUsed(),
	}, nil
}

// ParseConcise accepts only a case-insensitive "true".
func ParseConcise(value string) bool {
	return strings.EqualFold(value, "true")
}

// MarshalTOML encodes the effective configuration in the config file layout.
func (c Config) MarshalTOML() ([]byte, error) {
	encoded, err := toml.Marshal(toSchema(c))
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return encoded, nil
}
