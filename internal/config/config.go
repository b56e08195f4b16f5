package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		SendTimeout  int    `yaml:"send_timeout_seconds"`
	} `yaml:"email"`

	JWT struct {
		Secret        string `yaml:"secret"`
		TTL           int    `yaml:"ttl"`             // access token lifetime, minutes
		RefreshTTLDay int    `yaml:"refresh_ttl_days"` // refresh token lifetime, days
	} `yaml:"jwt"`

	Verification struct {
		AllowedDomain string `yaml:"allowed_domain"` // e.g. "uwaterloo.ca"
		LinkBaseURL   string `yaml:"link_base_url"`  // frontend origin for verify links
	} `yaml:"verification"`

	RateLimit struct {
		Backend        string `yaml:"backend"` // memory or redis
		RedisURL       string `yaml:"redis_url"`
		WindowMinutes  int    `yaml:"window_minutes"`
		MaxSubmissions int    `yaml:"max_submissions"`
	} `yaml:"ratelimit"`

	AI struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url"`
		Model   string `yaml:"model"`
	} `yaml:"ai"`
}

var AppConfig *Config

// LoadConfig reads config/config.yaml, or builds the config entirely
// from environment variables when DATABASE_URL is set (test/deploy mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("SMTP_FROM")

	cfg.Verification.AllowedDomain = os.Getenv("VERIFICATION_DOMAIN")
	cfg.Verification.LinkBaseURL = os.Getenv("VERIFICATION_LINK_BASE_URL")

	cfg.RateLimit.Backend = os.Getenv("RATELIMIT_BACKEND")
	cfg.RateLimit.RedisURL = os.Getenv("REDIS_URL")

	cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.JWT.RefreshTTLDay == 0 {
		cfg.JWT.RefreshTTLDay = 30
	}
	if cfg.Email.FromEmail == "" {
		cfg.Email.FromEmail = "verify@goosedoor.com"
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "GooseDoor"
	}
	if cfg.Email.SendTimeout == 0 {
		cfg.Email.SendTimeout = 10
	}
	if cfg.Verification.AllowedDomain == "" {
		cfg.Verification.AllowedDomain = "uwaterloo.ca"
	}
	if cfg.Verification.LinkBaseURL == "" {
		cfg.Verification.LinkBaseURL = "http://localhost:8080"
	}
	if cfg.RateLimit.Backend == "" {
		cfg.RateLimit.Backend = "memory"
	}
	if cfg.RateLimit.WindowMinutes == 0 {
		cfg.RateLimit.WindowMinutes = 10
	}
	if cfg.RateLimit.MaxSubmissions == 0 {
		cfg.RateLimit.MaxSubmissions = 3
	}
	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gpt-4o-mini"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
