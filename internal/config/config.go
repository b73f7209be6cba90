package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	SMTP     *SMTPConfig     `mapstructure:"smtp"`
	OSS      *OSSConfig      `mapstructure:"oss"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	BaseURL            string   `mapstructure:"base_url"`
	Port               string   `mapstructure:"port"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	Bucket          string `mapstructure:"bucket"`
}

// Load reads the YAML config at path. Secrets come from the environment and
// override whatever the file carries.
func Load(path string) (*AppConfig, error) {
	viper.SetConfigFile(path)

	bindings := map[string]string{
		"api.environment":       "API_ENVIRONMENT",
		"api.port":              "PORT",
		"api.jwt_signing_key":   "JWT_SIGNING_KEY",
		"postgres.host":         "POSTGRES_HOST",
		"postgres.port":         "POSTGRES_PORT",
		"postgres.user":         "POSTGRES_USER",
		"postgres.password":     "POSTGRES_PASSWORD",
		"postgres.db":           "POSTGRES_DB",
		"smtp.host":             "SMTP_HOST",
		"smtp.port":             "SMTP_PORT",
		"smtp.username":         "EMAIL_USER",
		"smtp.password":         "EMAIL_PASS",
		"smtp.from":             "EMAIL_FROM",
		"oss.endpoint":          "OSS_ENDPOINT",
		"oss.access_key_id":     "OSS_ACCESS_KEY_ID",
		"oss.access_key_secret": "OSS_ACCESS_KEY_SECRET",
		"oss.bucket":            "OSS_BUCKET",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("viper.BindEnv -> %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("config file changed", zap.String("file", e.Name))
	})
	viper.WatchConfig()

	conf := &AppConfig{}
	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	return conf, nil
}
