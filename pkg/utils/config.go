package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Places   PlacesConfig
	Security SecurityConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	PublicURL   string
	ThemeDir    string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// URL returns the database in postgres:// form, as expected by the migrator.
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:     c.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

type StorageConfig struct {
	Driver      string // postgres | memory
	CacheDriver string // postgres | redis | memory
}

type RedisConfig struct {
	URL string
}

// PlacesConfig holds the upstream endpoint plus the default credentials used
// when the option store has no saved values yet.
type PlacesConfig struct {
	APIKey  string
	PlaceID string
	BaseURL string
	Timeout time.Duration
}

type SecurityConfig struct {
	AuthKey           string
	AdminUser         string
	AdminPasswordHash string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "google-reviews")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("PUBLIC_URL", "")
	viper.SetDefault("THEME_DIR", "theme/")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("STORAGE_DRIVER", "postgres")
	viper.SetDefault("CACHE_DRIVER", "postgres")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("PLACES_BASE_URL", "https://maps.googleapis.com")
	viper.SetDefault("PLACES_TIMEOUT_SECONDS", 5)
	viper.SetDefault("ADMIN_USER", "admin")

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional, the process environment is enough
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        viper.GetString("APP_NAME"),
			Port:        viper.GetString("PORT"),
			Debug:       viper.GetBool("DEBUG"),
			LogPath:     viper.GetString("LOG_PATH"),
			PublicURL:   strings.TrimSuffix(viper.GetString("PUBLIC_URL"), "/"),
			ThemeDir:    viper.GetString("THEME_DIR"),
			CORSOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(viper.GetString("STORAGE_DRIVER")),
			CacheDriver: strings.ToLower(viper.GetString("CACHE_DRIVER")),
		},
		Redis: RedisConfig{
			URL: viper.GetString("REDIS_URL"),
		},
		Places: PlacesConfig{
			APIKey:  viper.GetString("GOOGLE_API_KEY"),
			PlaceID: viper.GetString("GOOGLE_PLACE_ID"),
			BaseURL: strings.TrimSuffix(viper.GetString("PLACES_BASE_URL"), "/"),
			Timeout: time.Duration(viper.GetInt("PLACES_TIMEOUT_SECONDS")) * time.Second,
		},
		Security: SecurityConfig{
			AuthKey:           viper.GetString("AUTH_KEY"),
			AdminUser:         viper.GetString("ADMIN_USER"),
			AdminPasswordHash: viper.GetString("ADMIN_PASSWORD_HASH"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks driver names and the settings that depend on them.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	switch c.Storage.CacheDriver {
	case "postgres", "redis", "memory":
	default:
		return fmt.Errorf("unknown CACHE_DRIVER %q", c.Storage.CacheDriver)
	}

	if c.Storage.CacheDriver == "postgres" && c.Storage.Driver != "postgres" {
		return fmt.Errorf("CACHE_DRIVER=postgres requires STORAGE_DRIVER=postgres")
	}

	return nil
}

// UsesPostgres reports whether any store needs a database pool.
func (c *Config) UsesPostgres() bool {
	return c.Storage.Driver == "postgres" || c.Storage.CacheDriver == "postgres"
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
