package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

const (
	defaultAPIBaseURL     = "http://localhost:8085"
	defaultTokenFile      = ".planner/token"
	defaultTokenEnv       = "PLANNER_TOKEN"
	defaultSandboxAddr    = ":8085"
	defaultInitialCredits = 3
	defaultCreditGrant    = 5
	defaultMongoDBName    = "tourplanner"
	defaultGeminiModel    = "gemini-2.5-flash"
)

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	API     APIConfig     `yaml:"api"`
	Auth    AuthConfig    `yaml:"auth"`
	Sandbox SandboxConfig `yaml:"sandbox"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// APIConfig describes the marketplace backend the planner talks to.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// TimeoutSeconds 0 means the http client default (10s).
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AuthConfig tells the planner where the bearer token lives.
// The token file plays the role browser local storage plays for the web client.
type AuthConfig struct {
	TokenFile string `yaml:"token_file"`
	TokenEnv  string `yaml:"token_env"`
}

// SandboxConfig configures the local stand-in backend (cmd/sandbox).
type SandboxConfig struct {
	Addr           string `yaml:"addr"`
	FixturesPath   string `yaml:"fixtures_path"`
	InitialCredits int    `yaml:"initial_credits"`
	CreditGrant    int    `yaml:"credit_grant"`
	MongoURI       string `yaml:"mongo_uri"`
	MongoDBName    string `yaml:"mongo_db_name"`
	GeminiModel    string `yaml:"gemini_model"`

	// secrets come from the environment only
	GeminiAPIKey string `yaml:"-"`
	JWTSecret    string `yaml:"-"`
}

var config *AppConfig

func InitApp() {
	base := GetBasePath()

	// load environment variables
	godotenv.Load(filepath.Join(base, ENV_FILE))

	if base == "" {
		c := defaults()
		applyEnv(c)
		config = c
		return
	}

	c, err := Load(filepath.Join(base, CONFIG_FILE))
	if err != nil {
		panic(err)
	}
	config = c
}

// Load reads the yaml file at path, fills defaults and applies environment overrides.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	c := defaults()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	fillDefaults(c)
	applyEnv(c)
	return c, nil
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// SetConfig replaces the global config. Used by binaries that receive an explicit -config flag.
func SetConfig(c *AppConfig) {
	config = c
}

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

func defaults() *AppConfig {
	c := &AppConfig{}
	fillDefaults(c)
	return c
}

func fillDefaults(c *AppConfig) {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultAPIBaseURL
	}
	if c.Auth.TokenFile == "" {
		c.Auth.TokenFile = defaultTokenFile
	}
	if c.Auth.TokenEnv == "" {
		c.Auth.TokenEnv = defaultTokenEnv
	}
	if c.Sandbox.Addr == "" {
		c.Sandbox.Addr = defaultSandboxAddr
	}
	if c.Sandbox.InitialCredits == 0 {
		c.Sandbox.InitialCredits = defaultInitialCredits
	}
	if c.Sandbox.CreditGrant == 0 {
		c.Sandbox.CreditGrant = defaultCreditGrant
	}
	if c.Sandbox.MongoDBName == "" {
		c.Sandbox.MongoDBName = defaultMongoDBName
	}
	if c.Sandbox.GeminiModel == "" {
		c.Sandbox.GeminiModel = defaultGeminiModel
	}
}

func applyEnv(c *AppConfig) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PLANNER_API_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("PLANNER_API_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("PLANNER_TOKEN_FILE"); v != "" {
		c.Auth.TokenFile = v
	}
	if v := os.Getenv("SANDBOX_MONGO_URI"); v != "" {
		c.Sandbox.MongoURI = v
	}
	c.Sandbox.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	c.Sandbox.JWTSecret = os.Getenv("SANDBOX_JWT_SECRET")
}
