package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take precedence
// over values from the config file. Returns a populated Config struct or an
// error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080) // 7 days

	// Optional config file in the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Configure environment variables with TASKFLOW_ prefix
	v.SetEnvPrefix("TASKFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind critical environment variables. AutomaticEnv alone does
	// not surface env-only keys to Unmarshal.
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"server.port", "TASKFLOW_SERVER_PORT"},
		{"server.log_level", "TASKFLOW_SERVER_LOG_LEVEL"},
		{"database.url", "TASKFLOW_DATABASE_URL"},
		{"auth.jwt_secret", "TASKFLOW_AUTH_JWT_SECRET"},
		{"auth.bcrypt_cost", "TASKFLOW_AUTH_BCRYPT_COST"},
		{"auth.token_lifetime_minutes", "TASKFLOW_AUTH_TOKEN_LIFETIME_MINUTES"},
		{"auth.refresh_token_lifetime_minutes", "TASKFLOW_AUTH_REFRESH_TOKEN_LIFETIME_MINUTES"},
		{"auth.admin_username", "TASKFLOW_AUTH_ADMIN_USERNAME"},
		{"auth.admin_email", "TASKFLOW_AUTH_ADMIN_EMAIL"},
		{"auth.admin_password", "TASKFLOW_AUTH_ADMIN_PASSWORD"},
	}
	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
