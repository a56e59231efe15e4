package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.API.BaseURL != DefaultAPIBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 0 {
		t.Fatalf("expected no client timeout by default, got %v", cfg.API.Timeout)
	}
	if cfg.Storage.Driver != StorageDriverMemory {
		t.Fatalf("expected memory storage, got %q", cfg.Storage.Driver)
	}
	if cfg.Storage.TokenKey != DefaultTokenKey {
		t.Fatalf("expected token key %q, got %q", DefaultTokenKey, cfg.Storage.TokenKey)
	}
	if got := cfg.Permissions.MutatorRoles; len(got) != 2 || got[0] != "ADMIN" || got[1] != "PRODUCTION_MANAGER" {
		t.Fatalf("unexpected mutator roles %v", got)
	}
	if got := cfg.Permissions.RequestorRoles; len(got) != 2 || got[1] != "REQUESTOR" {
		t.Fatalf("unexpected requestor roles %v", got)
	}
	if cfg.Console.WorkspaceIdleTTL != 2*time.Hour {
		t.Fatalf("expected 2h idle ttl, got %v", cfg.Console.WorkspaceIdleTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "http://localhost:8000/api")
	t.Setenv(EnvAPITimeout, "15s")
	t.Setenv(EnvMutatorRoles, " admin , producer ")
	t.Setenv(EnvStorageDriver, "REDIS")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.API.Endpoint("/productlog/product-details") != "http://localhost:8000/api/productlog/product-details" {
		t.Fatalf("unexpected endpoint %q", cfg.API.Endpoint("/productlog/product-details"))
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Fatalf("expected 15s timeout, got %v", cfg.API.Timeout)
	}
	if cfg.Storage.Driver != StorageDriverRedis {
		t.Fatalf("expected normalized redis driver, got %q", cfg.Storage.Driver)
	}
	if got := cfg.Permissions.MutatorRoles; len(got) != 2 || got[0] != "ADMIN" || got[1] != "PRODUCER" {
		t.Fatalf("expected normalized roles, got %v", got)
	}
}

func TestLoad_RedisDriverRequiresURL(t *testing.T) {
	t.Setenv(EnvStorageDriver, "redis")

	if _, err := Load(); err == nil {
		t.Fatal("expected redis driver without url to fail")
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv(EnvStorageDriver, "localstorage")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown storage driver to fail")
	}
}

func TestLoad_ProdRequiresCSRFKey(t *testing.T) {
	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvCSRFKey, "short")

	if _, err := Load(); err == nil {
		t.Fatal("expected short csrf key to fail in prod")
	}

	t.Setenv(EnvCSRFKey, "0123456789abcdef0123456789abcdef")
	if _, err := Load(); err != nil {
		t.Fatalf("expected 32 byte key to load, got %v", err)
	}
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "not a url")

	if _, err := Load(); err == nil {
		t.Fatal("expected invalid base url to fail")
	}
}
