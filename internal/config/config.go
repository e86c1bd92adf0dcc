package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SourceStore      = "store"
	SourceGenerative = "generative"
)

type Config struct {
	Env       string
	Server    ServerConfig
	DB        DBConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	JWT       JWTConfig
	Questions QuestionsConfig
	LLM       LLMConfig
	SMTP      SMTPConfig
	CacheTTLs CacheTTLConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int
}

type DBConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LoggerConfig struct {
	Level string
	Env   string
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

// QuestionsConfig controls where questions come from and how requests are clamped.
type QuestionsConfig struct {
	Source                  string
	DefaultTopic            string
	DefaultCount            int
	MaxCount                int
	SeedOnStartup           bool
	ResetLedgerOnModeSwitch bool
}

type LLMConfig struct {
	Provider       string
	APIKey         string
	Model          string
	FallbackModels []string
	ServerURL      string
	AttemptTimeout time.Duration
	HealthTimeout  time.Duration
	HealthCacheTTL time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Missing lists the SMTP settings that are required but empty.
func (s SMTPConfig) Missing() []string {
	var missing []string
	if s.Host == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if s.User == "" {
		missing = append(missing, "SMTP_USER")
	}
	if s.Password == "" {
		missing = append(missing, "SMTP_PASS")
	}
	if s.From == "" {
		missing = append(missing, "SMTP_FROM")
	}
	return missing
}

type CacheTTLConfig struct {
	UserResults time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("server.port", 3307)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 90*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.body_limit", 4*1024*1024)

	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.name", "aptitude_db")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("logger.level", "info")

	v.SetDefault("jwt.access_token_ttl", time.Hour)

	v.SetDefault("questions.source", SourceStore)
	v.SetDefault("questions.default_topic", "Maths")
	v.SetDefault("questions.default_count", 10)
	v.SetDefault("questions.max_count", 20)
	v.SetDefault("questions.seed_on_startup", true)
	v.SetDefault("questions.reset_ledger_on_mode_switch", true)

	v.SetDefault("llm.provider", "googleai")
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.fallback_models", []string{
		"gemini-2.5-flash",
		"gemini-2.5-pro",
		"gemini-2.5-flash-lite",
		"gemini-2.0-flash",
		"gemini-1.5-flash",
	})
	v.SetDefault("llm.attempt_timeout", 60*time.Second)
	v.SetDefault("llm.health_timeout", 7*time.Second)
	v.SetDefault("llm.health_cache_ttl", 30*time.Second)

	v.SetDefault("smtp.port", 587)

	v.SetDefault("cache_ttls.user_results", 2*time.Minute)
}

// legacyEnv maps config keys to the short environment names used by existing deployments.
var legacyEnv = map[string]string{
	"server.port":   "PORT",
	"db.password":   "DB_PASS",
	"llm.api_key":   "GEMINI_API_KEY",
	"llm.model":     "GEMINI_MODEL",
	"smtp.password": "SMTP_PASS",
}

func LoadConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../")
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		upper := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, upper, env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := fromViper(v)
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	env := v.GetString("env")
	return &Config{
		Env: env,
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			IdleTimeout:  v.GetDuration("server.idle_timeout"),
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		DB: DBConfig{
			Host:            v.GetString("db.host"),
			Port:            v.GetInt("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			DBName:          v.GetString("db.name"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   env,
		},
		JWT: JWTConfig{
			SecretKey:      v.GetString("jwt.secret_key"),
			AccessTokenTTL: v.GetDuration("jwt.access_token_ttl"),
		},
		Questions: QuestionsConfig{
			Source:                  strings.ToLower(v.GetString("questions.source")),
			DefaultTopic:            v.GetString("questions.default_topic"),
			DefaultCount:            v.GetInt("questions.default_count"),
			MaxCount:                v.GetInt("questions.max_count"),
			SeedOnStartup:           v.GetBool("questions.seed_on_startup"),
			ResetLedgerOnModeSwitch: v.GetBool("questions.reset_ledger_on_mode_switch"),
		},
		LLM: LLMConfig{
			Provider:       strings.ToLower(v.GetString("llm.provider")),
			APIKey:         v.GetString("llm.api_key"),
			Model:          v.GetString("llm.model"),
			FallbackModels: v.GetStringSlice("llm.fallback_models"),
			ServerURL:      v.GetString("llm.server_url"),
			AttemptTimeout: v.GetDuration("llm.attempt_timeout"),
			HealthTimeout:  v.GetDuration("llm.health_timeout"),
			HealthCacheTTL: v.GetDuration("llm.health_cache_ttl"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("smtp.host"),
			Port:     v.GetInt("smtp.port"),
			User:     v.GetString("smtp.user"),
			Password: v.GetString("smtp.password"),
			From:     v.GetString("smtp.from"),
		},
		CacheTTLs: CacheTTLConfig{
			UserResults: v.GetDuration("cache_ttls.user_results"),
		},
	}
}

// GetDSN renders the MySQL DSN for the configured database.
func (c *Config) GetDSN() string {
	mc := mysql.NewConfig()
	mc.User = c.DB.User
	mc.Passwd = c.DB.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port)
	mc.DBName = c.DB.DBName
	mc.ParseTime = true
	mc.MultiStatements = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}
