package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the gateway.
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Backend BackendConfig
	Session SessionConfig
	Routes  RoutesConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// RedisConfig holds connection values for the durable key/value store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// BackendConfig points at the collaborators the gateway fronts: the API
// origin proxied requests go to and the frontend origin page routes are
// served from.
type BackendConfig struct {
	APIBaseURL     string
	FrontendURL    string
	TimeoutSeconds int
}

// SessionConfig names the durable storage keys for both credential
// tracks plus the cart snapshot. Defaults match the storefront's
// historical localStorage keys.
type SessionConfig struct {
	TokenKey       string
	UserKey        string
	RoleKey        string
	ClientTokenKey string
	CartKey        string
}

// RoutesConfig holds the navigation route tables and redirect targets.
type RoutesConfig struct {
	Public       []string
	EmployeeOnly []string
	ClientOnly   []string
	LandingPath  string
	StaffLogin   string
	ClientLogin  string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "storefront-gateway"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Backend: BackendConfig{
			APIBaseURL:     getEnv("BACKEND_API_BASE_URL", "http://127.0.0.1:3000"),
			FrontendURL:    getEnv("FRONTEND_BASE_URL", "http://127.0.0.1:5173"),
			TimeoutSeconds: getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 15),
		},
		Session: SessionConfig{
			TokenKey:       getEnv("SESSION_TOKEN_KEY", "token"),
			UserKey:        getEnv("SESSION_USER_KEY", "user"),
			RoleKey:        getEnv("SESSION_ROLE_KEY", "rol"),
			ClientTokenKey: getEnv("SESSION_CLIENT_TOKEN_KEY", "cliente_token"),
			CartKey:        getEnv("SESSION_CART_KEY", "carrito"),
		},
		Routes: RoutesConfig{
			Public: getEnvAsList("ROUTES_PUBLIC",
				[]string{"/", "/login", "/about", "/carrito", "/login-cliente", "/register-cliente"}),
			EmployeeOnly: getEnvAsList("ROUTES_EMPLOYEE_ONLY",
				[]string{"/producto", "/proveedor", "/pedidos-empleado", "/cliente", "/ventas"}),
			ClientOnly: getEnvAsList("ROUTES_CLIENT_ONLY",
				[]string{"/pedidos-cliente"}),
			LandingPath: getEnv("ROUTES_LANDING", "/"),
			StaffLogin:  getEnv("ROUTES_STAFF_LOGIN", "/login"),
			ClientLogin: getEnv("ROUTES_CLIENT_LOGIN", "/login-cliente"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the outbound timeout for backend calls.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
