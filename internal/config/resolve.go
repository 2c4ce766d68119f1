package config

import (
	"os"

	"modelguard/internal/common/fsutil"
	"modelguard/internal/modelpath"
)

// Environment variables read by FromEnv.
const (
	EnvModelPath = "MODELGUARD_MODEL_PATH"
	EnvLogLevel  = "MODELGUARD_LOG_LEVEL"
	EnvLogFormat = "MODELGUARD_LOG_FORMAT"
	EnvLogFile   = "MODELGUARD_LOG_FILE"
	EnvAddr      = "MODELGUARD_ADDR"
	EnvConfig    = "MODELGUARD_CONFIG"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultAddr          = ":8089"
	DefaultWatchDebounce = 500
)

// Overrides carries values given on the command line. Empty strings are unset.
type Overrides struct {
	ModelPath string
	LogLevel  string
	LogFormat string
	LogFile   string
	Addr      string
}

// Defaults returns a Config with every ambient default filled in.
func Defaults() Config {
	return Config{
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
		Addr:            DefaultAddr,
		WatchDebounceMS: DefaultWatchDebounce,
	}
}

// Merge copies every set field of src over dst.
func Merge(dst *Config, src Config) {
	setStr(&dst.ModelPath, src.ModelPath)
	setStr(&dst.LogLevel, src.LogLevel)
	setStr(&dst.LogFormat, src.LogFormat)
	setStr(&dst.LogFile, src.LogFile)
	setStr(&dst.Addr, src.Addr)
	if src.WatchDebounceMS > 0 {
		dst.WatchDebounceMS = src.WatchDebounceMS
	}
	if src.LlamaCtx > 0 {
		dst.LlamaCtx = src.LlamaCtx
	}
	if src.LlamaGPULayers > 0 {
		dst.LlamaGPULayers = src.LlamaGPULayers
	}
}

// FromEnv overlays MODELGUARD_* variables onto cfg.
func FromEnv(cfg *Config) {
	setStr(&cfg.ModelPath, os.Getenv(EnvModelPath))
	setStr(&cfg.LogLevel, os.Getenv(EnvLogLevel))
	setStr(&cfg.LogFormat, os.Getenv(EnvLogFormat))
	setStr(&cfg.LogFile, os.Getenv(EnvLogFile))
	setStr(&cfg.Addr, os.Getenv(EnvAddr))
}

// Resolve builds the effective Config: defaults, then the config file (if
// any), then the environment, then flags. The model path has a leading "~"
// expanded. A missing model path is a ConfigurationError; the returned Config
// is still usable for logging setup in that case.
func Resolve(file string, flags Overrides) (Config, error) {
	cfg := Defaults()
	if file == "" {
		file = os.Getenv(EnvConfig)
	}
	if file != "" {
		fc, err := Load(file)
		if err != nil {
			return cfg, err
		}
		Merge(&cfg, fc)
	}
	FromEnv(&cfg)
	Merge(&cfg, Config{
		ModelPath: flags.ModelPath,
		LogLevel:  flags.LogLevel,
		LogFormat: flags.LogFormat,
		LogFile:   flags.LogFile,
		Addr:      flags.Addr,
	})
	p, err := ResolveModelPath(cfg.ModelPath)
	if err != nil {
		return cfg, err
	}
	cfg.ModelPath = p
	if cfg.ModelPath == "" {
		return cfg, modelpath.ErrModelPathUnset()
	}
	return cfg, nil
}

// ResolveModelPath expands a leading "~". It does not check existence.
func ResolveModelPath(p string) (string, error) {
	return fsutil.ExpandHome(p)
}

func setStr(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
