package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "SCTRACKER"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StorageDriverMemory = "memory"
	StorageDriverRedis  = "redis"

	DefaultAPIBaseURL = "https://staging-sctracker.aimingmed.local/api"
	DefaultTokenKey   = "authToken"
)

const (
	EnvAppEnv         = "SCTRACKER_APP_ENV"
	EnvPort           = "SCTRACKER_APP_PORT"
	EnvLogLevel       = "SCTRACKER_LOG_LEVEL"
	EnvAPIBaseURL     = "SCTRACKER_API_BASE_URL"
	EnvAPITimeout     = "SCTRACKER_API_TIMEOUT"
	EnvStorageDriver  = "SCTRACKER_STORAGE_DRIVER"
	EnvTokenKey       = "SCTRACKER_TOKEN_KEY"
	EnvRedisURL       = "SCTRACKER_REDIS_URL"
	EnvCSRFKey        = "SCTRACKER_CSRF_KEY"
	EnvWorkspaceTTL   = "SCTRACKER_WORKSPACE_IDLE_TTL"
	EnvMutatorRoles   = "SCTRACKER_MUTATOR_ROLES"
	EnvRequestorRoles = "SCTRACKER_REQUESTOR_ROLES"
	EnvApproverRoles  = "SCTRACKER_APPROVER_ROLES"
	EnvFulfillerRoles = "SCTRACKER_FULFILLER_ROLES"
)

const (
	minCSRFKeyLength   = 32
	defaultCookieName  = "sct_ws"
	defaultServiceName = "console"
)

type Config struct {
	App         AppConfig
	API         APIConfig
	Storage     StorageConfig
	Redis       RedisConfig
	Console     ConsoleConfig
	Permissions PermissionsConfig
}

// Load reads the process environment into a Config and validates cross-field rules.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SCTRACKER_APP_ENV" default:"dev"`
	Port         string `envconfig:"SCTRACKER_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SCTRACKER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SCTRACKER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// ServiceName is the value stamped on every log line.
func (a AppConfig) ServiceName() string {
	return defaultServiceName
}

type APIConfig struct {
	BaseURL string `envconfig:"SCTRACKER_API_BASE_URL" default:"https://staging-sctracker.aimingmed.local/api"`
	// Zero keeps the http.Client default, which never times out.
	Timeout time.Duration `envconfig:"SCTRACKER_API_TIMEOUT" default:"0s"`
}

// Endpoint joins the configured base URL with a resource path.
func (a APIConfig) Endpoint(path string) string {
	return strings.TrimRight(a.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

type StorageConfig struct {
	Driver   string `envconfig:"SCTRACKER_STORAGE_DRIVER" default:"memory"`
	TokenKey string `envconfig:"SCTRACKER_TOKEN_KEY" default:"authToken"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SCTRACKER_REDIS_URL"`
	Address      string        `envconfig:"SCTRACKER_REDIS_ADDR"`
	Password     string        `envconfig:"SCTRACKER_REDIS_PASSWORD"`
	DB           int           `envconfig:"SCTRACKER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SCTRACKER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SCTRACKER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SCTRACKER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SCTRACKER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SCTRACKER_REDIS_WRITE_TIMEOUT" default:"5s"`
	// StorageTTL bounds how long a persisted token survives without activity.
	StorageTTL time.Duration `envconfig:"SCTRACKER_REDIS_STORAGE_TTL" default:"720h"`
}

type ConsoleConfig struct {
	CookieName       string        `envconfig:"SCTRACKER_COOKIE_NAME" default:"sct_ws"`
	SecureCookie     bool          `envconfig:"SCTRACKER_SECURE_COOKIE" default:"false"`
	CSRFKey          string        `envconfig:"SCTRACKER_CSRF_KEY"`
	WorkspaceIdleTTL time.Duration `envconfig:"SCTRACKER_WORKSPACE_IDLE_TTL" default:"2h"`
	SweepInterval    time.Duration `envconfig:"SCTRACKER_WORKSPACE_SWEEP_INTERVAL" default:"5m"`
}

type PermissionsConfig struct {
	MutatorRoles   []string `envconfig:"SCTRACKER_MUTATOR_ROLES" default:"ADMIN,PRODUCTION_MANAGER"`
	// RequestorRoles may raise, edit and withdraw product requests.
	RequestorRoles []string `envconfig:"SCTRACKER_REQUESTOR_ROLES" default:"ADMIN,REQUESTOR"`
	ApproverRoles  []string `envconfig:"SCTRACKER_APPROVER_ROLES" default:"REQUEST_APPROVER"`
	FulfillerRoles []string `envconfig:"SCTRACKER_FULFILLER_ROLES" default:"FULFILLER"`
}

func (c *Config) validate() error {
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("%s is not a valid url: %w", EnvAPIBaseURL, err)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%s must not be negative", EnvAPITimeout)
	}

	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case StorageDriverMemory:
	case StorageDriverRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvRedisURL, EnvStorageDriver, StorageDriverRedis)
		}
	default:
		return fmt.Errorf("%s must be %q or %q, got %q", EnvStorageDriver, StorageDriverMemory, StorageDriverRedis, c.Storage.Driver)
	}
	if strings.TrimSpace(c.Storage.TokenKey) == "" {
		c.Storage.TokenKey = DefaultTokenKey
	}

	if c.Console.CookieName == "" {
		c.Console.CookieName = defaultCookieName
	}
	if c.App.IsProd() && len(c.Console.CSRFKey) < minCSRFKeyLength {
		return fmt.Errorf("%s must be at least %d bytes in %s", EnvCSRFKey, minCSRFKeyLength, AppEnvProd)
	}
	if c.Console.WorkspaceIdleTTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvWorkspaceTTL)
	}

	c.Permissions.MutatorRoles = normalizeRoles(c.Permissions.MutatorRoles)
	if len(c.Permissions.MutatorRoles) == 0 {
		return fmt.Errorf("%s must list at least one role", EnvMutatorRoles)
	}
	c.Permissions.RequestorRoles = normalizeRoles(c.Permissions.RequestorRoles)
	c.Permissions.ApproverRoles = normalizeRoles(c.Permissions.ApproverRoles)
	c.Permissions.FulfillerRoles = normalizeRoles(c.Permissions.FulfillerRoles)
	return nil
}

func normalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		role = strings.ToUpper(strings.TrimSpace(role))
		if role != "" {
			out = append(out, role)
		}
	}
	return out
}
