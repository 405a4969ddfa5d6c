package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/castrovroberto/prophet/internal/logger"
	"github.com/castrovroberto/prophet/internal/textutils"
)

// LLMConfig selects and tunes the completion provider.
type LLMConfig struct {
	Provider          string        `mapstructure:"provider"`
	Model             string        `mapstructure:"model"`
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	Stream            bool          `mapstructure:"stream"`
	Temperature       float64       `mapstructure:"temperature"`
	MaxTokens         int           `mapstructure:"max_tokens"`
	KeepAlive         string        `mapstructure:"keep_alive"` // Ollama only
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
}

// AnimationConfig holds the presentation timings.
type AnimationConfig struct {
	FrameInterval   time.Duration `mapstructure:"frame_interval"`
	CarouselFade    time.Duration `mapstructure:"carousel_fade"`
	CarouselHold    time.Duration `mapstructure:"carousel_hold"`
	CarouselLength  int           `mapstructure:"carousel_length"`
	ResponseVisible time.Duration `mapstructure:"response_visible"`
	ResponseFade    time.Duration `mapstructure:"response_fade"`
}

// AppConfig holds the application's global configuration.
type AppConfig struct {
	LogLevel    string                    `mapstructure:"log_level"`
	LogFile     string                    `mapstructure:"log_file"`
	Seed        int64                     `mapstructure:"seed"`
	PersonaFile string                    `mapstructure:"persona_file"`
	LLM         LLMConfig                 `mapstructure:"llm"`
	Animation   AnimationConfig           `mapstructure:"animation"`
	Truncate    textutils.TruncateOptions `mapstructure:"truncate"`

	persona *Persona // Loaded from PersonaFile, or the built-in persona
}

// Persona returns the loaded persona, falling back to the built-in one.
func (ac *AppConfig) Persona() *Persona {
	if ac.persona == nil {
		return DefaultPersona()
	}
	return ac.persona
}

// Sentinel errors for configuration loading.
var (
	ErrConfigFileNotFound   = errors.New("config: specified config file not found")
	ErrConfigReadPermission = errors.New("config: permission denied reading config file")
	ErrConfigUnmarshal      = errors.New("config: failed to unmarshal config data")
	ErrConfigRead           = errors.New("config: generic error reading config file")
)

var (
	Cfg    AppConfig
	once   sync.Once
	loader *Loader
)

// Supported LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// Loader reads configuration into an AppConfig from one viper instance.
type Loader struct {
	v       *viper.Viper
	cfgFile string
}

// NewLoader creates a loader on v. An empty cfgFile searches the default
// locations.
func NewLoader(v *viper.Viper, cfgFile string) *Loader {
	return &Loader{v: v, cfgFile: cfgFile}
}

// LoadConfig loads the global configuration from file, environment
// variables and defaults. It ensures this happens only once.
func LoadConfig(cfgFile string) error {
	var loadErr error
	once.Do(func() {
		loader = NewLoader(viper.GetViper(), cfgFile)
		cfg, err := loader.Load()
		if err != nil {
			loadErr = err
			return
		}
		Cfg = *cfg
	})
	return loadErr
}

// Watch reloads the global configuration whenever the config file changes.
// It is a no-op until LoadConfig succeeded.
func Watch(onChange func(*AppConfig, error)) {
	if loader != nil {
		loader.Watch(onChange)
	}
}

func (l *Loader) setDefaults() {
	v := l.v
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "prophet.log")
	v.SetDefault("seed", 0)
	v.SetDefault("persona_file", "")

	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.model", "gpt-3.5-turbo")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.request_timeout", "60s")
	v.SetDefault("llm.stream", true)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 0)
	v.SetDefault("llm.keep_alive", "5m")
	v.SetDefault("llm.requests_per_minute", 0) // 0 disables local throttling

	v.SetDefault("animation.frame_interval", "50ms")
	v.SetDefault("animation.carousel_fade", "500ms")
	v.SetDefault("animation.carousel_hold", "1500ms")
	v.SetDefault("animation.carousel_length", 3)
	v.SetDefault("animation.response_visible", "10s")
	v.SetDefault("animation.response_fade", "2s")

	def := textutils.DefaultTruncateOptions()
	v.SetDefault("truncate.max_chars", def.MaxChars)
	v.SetDefault("truncate.tolerance", def.Tolerance)
	v.SetDefault("truncate.max_lines", def.MaxLines)
	v.SetDefault("truncate.ellipsis", def.Ellipsis)
}

// Load reads the configuration. A missing config file is only an error when
// one was named explicitly.
func (l *Loader) Load() (*AppConfig, error) {
	v := l.v
	l.setDefaults()

	if l.cfgFile != "" {
		v.SetConfigFile(l.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".prophet")) // ~/.prophet/.prophet.yaml
			v.AddConfigPath(home)                            // ~/.prophet.yaml
		}
		v.AddConfigPath(".")
		v.SetConfigName(".prophet")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PROPHET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("llm.api_key", "PROPHET_LLM_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// Defaults are fine when no file was asked for.
		case l.cfgFile != "" && os.IsNotExist(err):
			return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, l.cfgFile)
		case os.IsPermission(err):
			return nil, fmt.Errorf("%w: %v", ErrConfigReadPermission, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrConfigRead, err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	if cfg.PersonaFile != "" {
		path, err := resolvePath(cfg.PersonaFile, v.ConfigFileUsed())
		if err != nil {
			return nil, err
		}
		persona, err := LoadPersona(path)
		if err != nil {
			return nil, err
		}
		cfg.persona = persona
	}

	cfg.normalize()
	return &cfg, nil
}

// Watch re-runs Load on every change of the config file in use.
func (l *Loader) Watch(onChange func(*AppConfig, error)) {
	if l.v.ConfigFileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		logger.Get().Info("Config file changed", "file", e.Name, "op", e.Op.String())
		onChange(l.Load())
	})
	l.v.WatchConfig()
}

// normalize clamps invalid values to safe defaults.
func (ac *AppConfig) normalize() {
	log := logger.Get()

	switch ac.LLM.Provider {
	case ProviderOpenAI, ProviderOllama, ProviderGemini:
	default:
		log.Warn("Unknown llm.provider, falling back to openai", "provider", ac.LLM.Provider)
		ac.LLM.Provider = ProviderOpenAI
	}

	if ac.LLM.APIKey == "" {
		switch ac.LLM.Provider {
		case ProviderOpenAI:
			ac.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case ProviderGemini:
			ac.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}

	if ac.LLM.RequestTimeout <= 0 {
		log.Warn("llm.request_timeout must be positive, setting to default (60s)")
		ac.LLM.RequestTimeout = 60 * time.Second
	}
	if ac.LLM.RequestsPerMinute < 0 {
		ac.LLM.RequestsPerMinute = 0
	}

	if ac.Animation.FrameInterval <= 0 {
		log.Warn("animation.frame_interval must be positive, setting to default (50ms)")
		ac.Animation.FrameInterval = 50 * time.Millisecond
	}
	if ac.Animation.ResponseVisible < 10*time.Second {
		log.Warn("animation.response_visible is below the 10s minimum, clamping", "configured", ac.Animation.ResponseVisible)
		ac.Animation.ResponseVisible = 10 * time.Second
	}
	if ac.Animation.CarouselLength < 0 {
		ac.Animation.CarouselLength = 0
	}

	def := textutils.DefaultTruncateOptions()
	if ac.Truncate.MaxChars <= 0 {
		ac.Truncate.MaxChars = def.MaxChars
	}
	if ac.Truncate.Tolerance < 0 || ac.Truncate.Tolerance > ac.Truncate.MaxChars {
		log.Warn("truncate.tolerance out of range, setting to default", "tolerance", ac.Truncate.Tolerance)
		ac.Truncate.Tolerance = min(def.Tolerance, ac.Truncate.MaxChars)
	}

	if ac.LogLevel != "" && !isValidLogLevel(ac.LogLevel) {
		log.Warn("Invalid log_level, setting to default (info)", "log_level", ac.LogLevel)
		ac.LogLevel = "info"
	}
}

// resolvePath resolves a relative path against the config file's directory
// first, then against the working directory.
func resolvePath(path string, configFilePath string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	if configFilePath != "" {
		absPath := filepath.Join(filepath.Dir(configFilePath), path)
		if _, err := os.Stat(absPath); err == nil {
			return absPath, nil
		}
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to make path absolute: %w", err)
	}
	return absPath, nil
}

// isValidLogLevel checks if the provided log level is valid
func isValidLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[strings.ToLower(level)]
}
