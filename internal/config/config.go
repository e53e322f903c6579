package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	SenderLog     = "log"
	SenderWebhook = "webhook"

	DenylistMemory = "memory"
	DenylistRedis  = "redis"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	Storage    Storage    `yaml:"storage"`
	Database   Database   `yaml:"database"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Auth       Auth       `yaml:"auth"`
	Notifier   Notifier   `yaml:"notifier"`
	Redis      Redis      `yaml:"redis"`
}

type Storage struct {
	Type string `yaml:"type" env:"STORAGE_TYPE" env-default:"postgres"`
}

type Database struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-default:"shiftease"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Auth configures tokens. Denylist is memory or redis. BootstrapAdminEmail,
// when set, is made an admin on start-up.
type Auth struct {
	JWTSecret              string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL               time.Duration `yaml:"token_ttl" env-default:"24h"`
	Denylist               string        `yaml:"denylist" env:"AUTH_DENYLIST" env-default:"memory"`
	BootstrapAdminEmail    string        `yaml:"bootstrap_admin_email" env:"AUTH_BOOTSTRAP_ADMIN_EMAIL"`
	BootstrapAdminPassword string        `yaml:"bootstrap_admin_password" env:"SHIFTEASE_ADMIN_PASSWORD"`
}

type Notifier struct {
	Sender       string        `yaml:"sender" env:"NOTIFIER_SENDER" env-default:"log"`
	WebhookURL   string        `yaml:"webhook_url" env:"NOTIFIER_WEBHOOK_URL"`
	PollInterval time.Duration `yaml:"poll_interval" env-default:"5s"`
	BatchSize    int           `yaml:"batch_size" env-default:"50"`
	MaxAttempts  int           `yaml:"max_attempts" env-default:"5"`
	Timeout      time.Duration `yaml:"timeout" env-default:"5s"`
}

type Redis struct {
	Addr          string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password      string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB            int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	DialTimeout   time.Duration `yaml:"dial_timeout" env-default:"5s"`
	Timeout       time.Duration `yaml:"timeout" env-default:"3s"`
	MaxRetries    int           `yaml:"max_retries" env-default:"3"`
	RetryInterval time.Duration `yaml:"retry_interval" env-default:"1s"`
}

// MustLoad reads the file named by CONFIG_PATH and panics-exits on any problem.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, err
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
