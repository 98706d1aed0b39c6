package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	WebHost, SecretKey, ProviderURL, DataDir string
	WebPort                                  int
}

func Load() (Config, error) {

	viper.SetDefault("web.host", "0.0.0.0")
	viper.SetDefault("web.port", 5000)
	viper.SetDefault("secret_key", "your-secret-key-here")
	viper.SetDefault("provider.url", "https://api.mail.tm")
	viper.SetDefault("data_dir", ".")

	_ = viper.ReadInConfig() // ignore missing config file

	c := Config{
		WebHost:     viper.GetString("web.host"),
		WebPort:     viper.GetInt("web.port"),
		SecretKey:   viper.GetString("secret_key"),
		ProviderURL: viper.GetString("provider.url"),
		DataDir:     viper.GetString("data_dir"),
	}

	// ---- OVERRIDE WITH ENV VARS (STRICT) ----
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.SecretKey = v
	}
	if v := os.Getenv("MAIL_TM_API_URL"); v != "" {
		c.ProviderURL = v
	}
	if v := os.Getenv("INSTANTLY_WEB_HOST"); v != "" {
		c.WebHost = v
	}
	if v := os.Getenv("INSTANTLY_WEB_PORT"); v != "" {
		fmt.Sscanf(v, "%d", &c.WebPort)
	}
	if v := os.Getenv("INSTANTLY_DATA_DIR"); v != "" {
		c.DataDir = v
	}

	// ---- CREATE DATA DIR ----
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return Config{}, fmt.Errorf("mkdir data dir: %w", err)
	}

	return c, nil
}
