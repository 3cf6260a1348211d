package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type MailConfig struct {
	Host     string `env:"MAIL_HOST"`
	Port     int    `env:"MAIL_PORT" envDefault:"587"`
	Username string `env:"MAIL_USERNAME"`
	Password string `env:"MAIL_PASSWORD"`
	From     string `env:"MAIL_FROM" envDefault:"noreply@englerhouse.local"`
	// куда уходят уведомления о новых заявках; если пусто, то на From
	NotifyTo string `env:"MAIL_NOTIFY_TO"`
	TLS      bool   `env:"MAIL_TLS" envDefault:"true"`
	// отправлять ли пароль в письме о создании аккаунта
	SendCredentials bool `env:"MAIL_SEND_CREDENTIALS" envDefault:"false"`
}

func (m MailConfig) InquiryRecipient() string {
	if m.NotifyTo != "" {
		return m.NotifyTo
	}
	return m.From
}

type Config struct {
	DBDSN         string `env:"DB_DSN"`
	ServerPort    string `env:"SERVER_PORT" envDefault:"8080"`
	SessionSecret string `env:"SESSION_SECRET"`
	SiteURL       string `env:"SITE_URL" envDefault:"http://127.0.0.1:8000"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	MediaRoot     string `env:"MEDIA_ROOT" envDefault:"./media"`
	MediaURL      string `env:"MEDIA_URL" envDefault:"/media/"`
	StaticRoot    string `env:"STATIC_ROOT" envDefault:"./web/static"`
	TemplatesGlob string `env:"TEMPLATES_GLOB" envDefault:"web/templates/*.html"`

	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@englerhouse.local"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	Mail MailConfig
}

// Parse читает .env (если есть) и переменные окружения.
func Parse() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "parse env")
	}
	return cfg, nil
}

// Load используется сервером: без БД и секрета сессий стартовать нельзя.
func Load() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN is not set")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}

	return cfg
}
