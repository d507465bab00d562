package core

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config contains all of the configuration options available to the konami
// command line tools.
type Config struct {
	// Minimum level of a log required to be written. Options: debug, info, warn, error
	LogLevel string `mapstructure:"log_level"`
	// Full path to file to which logs will be written. Blank will write to stderr.
	LogFilePath string `mapstructure:"log_file_path"`
	// Key used by the one-shot encrypt and decrypt commands when --key is not passed.
	DefaultKey string `mapstructure:"default_key"`

	Cache struct {
		// Whether decoded keys are remembered between requests.
		Enabled bool `mapstructure:"enabled"`
		// How long a decoded key is remembered.
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"cache"`

	Debugging struct {
		// Dump the decoded key offsets for every request at debug level.
		DumpOffsets bool `mapstructure:"dump_offsets"`
	} `mapstructure:"debugging"`
}

const envVarPrefix = "KONAMI"

var defaults = map[string]interface{}{
	"log_level":              "info",
	"log_file_path":          "",
	"default_key":            "",
	"cache.enabled":          true,
	"cache.ttl":              10 * time.Minute,
	"debugging.dump_offsets": false,
}

// flagKeys maps command line flags onto the config keys they override.
var flagKeys = map[string]string{
	"log-level": "log_level",
	"debug":     "debugging.dump_offsets",
}

// LoadConfig reads config.yaml from configPath (if one exists), applies any
// KONAMI_ prefixed environment variables and finally any flags in flags that
// were set on the command line. Both configPath and flags may be empty.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if configPath != "" {
		v.AddConfigPath(configPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "reading config file")
			}
		}
	}

	v.SetEnvPrefix(envVarPrefix)
	v.AutomaticEnv()

	// This allows us to set nested yaml config options through environment
	// variables. For example, cache.ttl can be set using: KONAMI_CACHE_TTL
	for _, k := range v.AllKeys() {
		envVar := strings.ReplaceAll(strings.ToUpper(k), ".", "_")
		if err := v.BindEnv(k, envVarPrefix+"_"+envVar); err != nil {
			return nil, errors.Wrapf(err, "binding %s to %s", k, envVarPrefix+"_"+envVar)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "binding flag --%s", name)
				}
			}
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config object")
	}
	return config, nil
}
