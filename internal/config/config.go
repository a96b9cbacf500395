package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	CartService CartServiceConfig
	Gateway     GatewayConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Sidebar     SidebarConfig
}

type CartServiceConfig struct {
	BaseURL  string
	TenantID string
	StoreID  string
}

// GatewayConfig holds the admin gateway settings. Services maps a route
// prefix (e.g. "customers") to the backend microservice base URL.
type GatewayConfig struct {
	APIKeyHash string
	Services   map[string]string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr string
}

// SidebarConfig maps a navigation section key to its visibility override,
// read from SIDEBAR_<KEY> variables at load time.
type SidebarConfig map[string]bool

// proxiedServices are the backend microservices the admin gateway fronts.
// Each resolves its URL from <NAME>_SERVICE_URL.
var proxiedServices = []string{
	"categories",
	"customers",
	"products",
	"orders",
	"storefronts",
	"themes",
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		CartService: CartServiceConfig{
			BaseURL:  getEnvOrViper("CART_SERVICE_URL", ""),
			TenantID: getEnvOrViper("TENANT_ID", ""),
			StoreID:  getEnvOrViper("STORE_ID", ""),
		},
		Gateway: GatewayConfig{
			APIKeyHash: getEnvOrViper("GATEWAY_API_KEY_HASH", ""),
			Services:   loadServiceURLs(),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr: getEnvOrViper("REDIS_ADDR", "localhost:6379"),
		},
		Sidebar: loadSidebarFlags(),
	}

	return cfg, nil
}

func loadServiceURLs() map[string]string {
	services := make(map[string]string)
	for _, name := range proxiedServices {
		key := strings.ToUpper(name) + "_SERVICE_URL"
		if url := getEnvOrViper(key, ""); url != "" {
			services[name] = url
		}
	}
	return services
}

// loadSidebarFlags collects SIDEBAR_<KEY>=true/false visibility overrides.
// Keys are lowercased; anything other than "true" counts as hidden.
func loadSidebarFlags() SidebarConfig {
	flags := make(SidebarConfig)
	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, "SIDEBAR_") {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, "SIDEBAR_"))
		flags[key] = strings.EqualFold(value, "true")
	}
	return flags
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
