package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/delegate/pkg/errors"
	"github.com/arthur-debert/delegate/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	pelletier "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

// EnvPrefix is the prefix of environment overrides
const EnvPrefix = "DELEGATE_"

// LoadOptions selects the sources beyond the embedded defaults
type LoadOptions struct {
	// ConfigFile is an explicit config path. It must exist when set.
	ConfigFile string

	// Overrides are dotted keys applied last, usually from flags
	Overrides map[string]interface{}
}

// Load merges every configuration layer, unmarshals and validates the result
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Config file
	path, err := resolveConfigFile(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		log.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.raw = k.Raw()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the embedded defaults without reading files or env
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal defaults")
	}
	cfg.raw = k.Raw()
	return &cfg, nil
}

// Effective renders the merged key space as TOML
func (c *Config) Effective() ([]byte, error) {
	out, err := pelletier.Marshal(c.raw)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return out, nil
}

// resolveConfigFile picks the explicit path, then $DELEGATE_CONFIG, then the
// XDG location. Only the XDG file may be missing.
func resolveConfigFile(explicit string) (string, error) {
	for _, candidate := range []string{explicit, os.Getenv(paths.EnvConfigFile)} {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file not readable: %s", candidate).
				WithDetail("path", candidate)
		}
		return candidate, nil
	}

	path := paths.ConfigFile()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// envKey maps DELEGATE_BENCH_ITERATIONS to bench.iterations. Only the first
// underscore separates section and key, so DELEGATE_DELEGATE_ID_SCOPE maps to
// delegate.id_scope. Variables without a section are ignored.
func envKey(s string) string {
	name := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	switch section {
	case "log", "output", "delegate", "demo", "bench":
		return section + "." + key
	default:
		return ""
	}
}
