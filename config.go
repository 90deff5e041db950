package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config is the application configuration, loaded from a .config.json file
// with sane dev defaults. Secrets can additionally be overridden through the
// environment (or a .env file), so they never have to live in the json file.
type Config struct {
	Port   int    `json:"port"`
	Env    string `json:"env"`
	Pepper string `json:"pepper"`

	JWTSecret       string `json:"jwt_secret"`
	TokenTTLMinutes int    `json:"token_ttl_minutes"`

	// BearerWrites decides whether a bearer token may be used on
	// content-mutating endpoints, or only an API key.
	BearerWrites bool `json:"bearer_writes"`

	MediaDir string `json:"media_dir"`

	Database PostgresConfig `json:"database"`
}

// IsProd reports whether we're running in production.
func (c Config) IsProd() bool {
	return c.Env == "prod"
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// ConnectionInfo builds the DSN for the configured database.
func (pc PostgresConfig) ConnectionInfo() string {
	if pc.Password == "" {
		return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=disable", pc.Host, pc.Port, pc.User, pc.Name)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", pc.Host, pc.Port, pc.User, pc.Password, pc.Name)
}

func DefaultConfig() Config {
	return Config{
		Port:            1111,
		Env:             "dev",
		Pepper:          "secret-random-string",
		JWTSecret:       "secret-jwt-key",
		TokenTTLMinutes: 60 * 24 * 7, // 7 days
		BearerWrites:    true,
		MediaDir:        "media",
		Database:        DefaultPostgresConfig(),
	}
}

func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "",
		Name:     "chirp",
	}
}

// LoadConfig loads configuration from a .config.json file if present,
// otherwise it falls back to the default dev setup. In production the file is
// required and the app panics without it. Environment variables (optionally
// from a .env file) override the secrets last.
func LoadConfig(required bool) Config {
	c := DefaultConfig()

	f, err := os.Open(".config.json")
	if err != nil {
		if required {
			panic(err)
		}
	} else {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&c); err != nil {
			panic(err)
		}
	}

	// .env is optional, plain environment variables work just as well.
	godotenv.Load()
	c.applyEnv()
	return c
}

// applyEnv overrides secret material with environment values, if set.
func (c *Config) applyEnv() {
	if v := os.Getenv("CHIRP_PEPPER"); v != "" {
		c.Pepper = v
	}
	if v := os.Getenv("CHIRP_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("CHIRP_DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
}
