package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"rpg-server/internal/utils"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration.
type Config struct {
	Env         string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	ServerPort  string `envconfig:"SERVER_PORT" default:"8000"`
	SecretsDir  string `envconfig:"SECRETS_DIR" default:"/run/secrets"`

	// PostgreSQL
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"rpg"`
	DBName        string        `envconfig:"DB_NAME" default:"rpg"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_TIME" default:"5m"`
	DBAutoMigrate bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
	DBPassword    string        `ignored:"true"`

	// Redis: access tokens and rate limiting
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string `ignored:"true"`

	// RabbitMQ is optional; encounter events are not published without it.
	RabbitMQURL string `envconfig:"RABBITMQ_URL"`

	// Auth
	JWTSecret      string        `ignored:"true"`
	PasswordPepper string        `ignored:"true"`
	AccessTokenTTL time.Duration `envconfig:"JWT_ACCESS_TOKEN_TTL" default:"24h"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:4200"`
	LLMRateLimit       int    `envconfig:"LLM_RATE_LIMIT_PER_MINUTE" default:"30"`

	// Encounter engine
	PromptLanguage string   `envconfig:"PROMPT_LANGUAGE" default:"Brazilian Portuguese"`
	DefaultChoices []string `envconfig:"DEFAULT_CHOICES" default:"Attack,Defend,Use Item"`
	StartMaxTokens int      `envconfig:"LLM_START_MAX_TOKENS" default:"800"`
	TurnMaxTokens  int      `envconfig:"LLM_TURN_MAX_TOKENS" default:"1000"`
	Temperature    float64  `envconfig:"LLM_TEMPERATURE" default:"0.5"`

	LLMConfig
}

// LLMConfig describes the provider chain.
type LLMConfig struct {
	BackendsFile string        `envconfig:"LLM_BACKENDS_FILE"`
	Timeout      time.Duration `envconfig:"LLM_TIMEOUT" default:"15s"`

	GeminiModel   string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	OllamaModel   string `envconfig:"OLLAMA_MODEL"`
	OllamaBaseURL string `envconfig:"OLLAMA_BASE_URL" default:"http://localhost:11434"`

	// Backends is the resolved, ordered chain.
	Backends []BackendConfig `ignored:"true"`
}

// GetAllowedOrigins splits CORSAllowedOrigins on commas.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// GetDSN returns the PostgreSQL connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig loads configuration from an optional .env file, environment variables and secret files.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
			} else {
				log.Printf("Loaded configuration from %s", envFilePath)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	var err error
	if cfg.DBPassword, err = utils.ReadSecret(cfg.SecretsDir, "db_password"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret, err = utils.ReadSecret(cfg.SecretsDir, "jwt_secret"); err != nil {
		return nil, err
	}
	cfg.PasswordPepper = cfg.optionalSecret("password_pepper")
	cfg.RedisPassword = cfg.optionalSecret("redis_password")

	backends, err := cfg.resolveBackends()
	if err != nil {
		return nil, err
	}
	cfg.Backends = backends
	if len(backends) == 0 {
		log.Println("Warning: no LLM backend configured, every request will get the static fallback reply.")
	}

	log.Println("Configuration loaded successfully (secrets read from files).")
	return &cfg, nil
}

func (c *Config) optionalSecret(name string) string {
	value, err := utils.ReadSecret(c.SecretsDir, name)
	if err != nil {
		log.Printf("Optional secret '%s' not found or failed to read: %v", name, err)
		return ""
	}
	return value
}
