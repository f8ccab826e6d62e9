package config

import (
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"voxnote/apperr"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

// AppConfig is the full application configuration. The live configuration is
// an immutable snapshot; updates clone, mutate, and atomically swap it, so
// in-flight operations keep the snapshot they started with.
type AppConfig struct {
	Logging    LoggingConfig           `yaml:"logging"`
	Server     ServerConfig            `yaml:"server"`
	Mongo      MongoConfig             `yaml:"mongo"`
	Kafka      KafkaConfig             `yaml:"kafka"`
	Models     map[string]ModelProfile `yaml:"models"`
	Settings   ModelSettings           `yaml:"model_settings"`
	Debug      DebugConfig             `yaml:"debug"`
	Processing ProcessingConfig        `yaml:"processing"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type MongoConfig struct {
	URI    string `yaml:"uri"`
	DBName string `yaml:"db_name"`
}

type KafkaConfig struct {
	// Brokers empty disables event publishing.
	Brokers string `yaml:"brokers"`
}

// ModelProfile is a named model endpoint configuration.
type ModelProfile struct {
	URL       string `yaml:"url"`
	APIKey    string `yaml:"api_key"`
	ModelName string `yaml:"model_name"`
}

// ModelSettings are the global knobs applied to every model call.
type ModelSettings struct {
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	MaxRetries     int     `yaml:"max_retries"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
}

type DebugConfig struct {
	Enabled       bool `yaml:"enabled"`
	LogModelCalls bool `yaml:"log_model_calls"`
}

type ProcessingConfig struct {
	// ActiveModel names the profile used for analysis calls.
	ActiveModel string `yaml:"active_model"`
	// BatchWorkers bounds concurrent batch pairs; <=1 means sequential.
	BatchWorkers int `yaml:"batch_workers"`
	// MaxConcurrentModelCalls caps in-flight gateway calls process-wide.
	MaxConcurrentModelCalls int64 `yaml:"max_concurrent_model_calls"`
}

var current atomic.Pointer[AppConfig]

// InitApp loads .env and config.yaml and installs the initial snapshot.
func InitApp() {
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		panic(err)
	}
	applyDefaults(&c)
	current.Store(&c)
}

func applyDefaults(c *AppConfig) {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Mongo.URI == "" {
		c.Mongo.URI = os.Getenv("MONGO_URI")
	}
	if c.Mongo.DBName == "" {
		c.Mongo.DBName = "voxnote"
	}
	if c.Kafka.Brokers == "" {
		c.Kafka.Brokers = os.Getenv("KAFKA_BROKERS")
	}
	if c.Models == nil {
		c.Models = map[string]ModelProfile{}
	}
	if c.Settings.TimeoutSeconds <= 0 {
		c.Settings.TimeoutSeconds = 200
	}
	if c.Settings.MaxRetries <= 0 {
		c.Settings.MaxRetries = 3
	}
	if c.Settings.Temperature <= 0 {
		c.Settings.Temperature = 0.1
	}
	if c.Settings.MaxTokens <= 0 {
		c.Settings.MaxTokens = 4000
	}
	if c.Processing.ActiveModel == "" {
		c.Processing.ActiveModel = "default"
	}
	if c.Processing.BatchWorkers <= 0 {
		c.Processing.BatchWorkers = 1
	}
	if c.Processing.MaxConcurrentModelCalls <= 0 {
		c.Processing.MaxConcurrentModelCalls = 4
	}
}

// GetConfig returns the current snapshot. Callers must treat it as
// read-only; mutation goes through the Update* functions.
func GetConfig() AppConfig {
	if current.Load() == nil {
		InitApp()
	}
	return *current.Load()
}

// Set installs cfg as the current snapshot. Intended for tests and for
// embedding the package without a config.yaml on disk.
func Set(cfg AppConfig) {
	applyDefaults(&cfg)
	current.Store(&cfg)
}

// Profile resolves a named model profile from the current snapshot.
// A profile without an api_key falls back to the MODEL_API_KEY env var.
func Profile(name string) (ModelProfile, error) {
	cfg := GetConfig()
	p, ok := cfg.Models[name]
	if !ok {
		return ModelProfile{}, apperr.New(apperr.ProcessingFailed, "model profile %q not found", name)
	}
	if p.APIKey == "" {
		p.APIKey = os.Getenv("MODEL_API_KEY")
	}
	if p.URL == "" || p.APIKey == "" || p.ModelName == "" {
		return ModelProfile{}, apperr.New(apperr.ProcessingFailed, "model profile %q is incomplete", name)
	}
	return p, nil
}

// ValidateProfile reports whether the named profile is usable.
func ValidateProfile(name string) error {
	_, err := Profile(name)
	return err
}

// ListModels returns the configured profile names, sorted.
func ListModels() []string {
	cfg := GetConfig()
	names := make([]string, 0, len(cfg.Models))
	for name := range cfg.Models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UpdateModelProfile upserts a named profile and swaps in a new snapshot.
// All fields are required. In-flight calls keep the previous snapshot.
func UpdateModelProfile(name, url, apiKey, modelName string) error {
	if name == "" || url == "" || apiKey == "" || modelName == "" {
		return apperr.New(apperr.ProcessingFailed, "all model profile fields are required")
	}
	old := GetConfig()
	next := old
	next.Models = make(map[string]ModelProfile, len(old.Models)+1)
	for k, v := range old.Models {
		next.Models[k] = v
	}
	next.Models[name] = ModelProfile{URL: url, APIKey: apiKey, ModelName: modelName}
	current.Store(&next)
	return nil
}

// UpdateModelSettings replaces the global model settings snapshot.
func UpdateModelSettings(s ModelSettings) {
	old := GetConfig()
	next := old
	next.Settings = s
	applyDefaults(&next)
	current.Store(&next)
}

// GetBasePath walks up from the working directory to the first directory
// containing config.yaml.
func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
