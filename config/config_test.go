package config_test

import (
	"testing"
	"time"

	cfg "github.com/zhivlux/storefront/config"
)

// TestLoadWithPrefix_Defaults — проверка значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("STORE_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":8080" {
		t.Fatalf("HTTP.Addr: want :8080, got %q", c.HTTP.Addr)
	}
	if c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP.GinMode: want debug, got %q", c.HTTP.GinMode)
	}
	if c.HTTP.ReadTimeout != 10*time.Second || c.HTTP.WriteTimeout != 10*time.Second {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.GracefulTimeout != 5*time.Second {
		t.Fatalf("HTTP.GracefulTimeout: want 5s, got %v", c.HTTP.GracefulTimeout)
	}

	// Backend/Cache/Midtrans — пустые значения = не настроено.
	if c.Backend.IsConfigured() {
		t.Fatalf("Backend must not be configured by default: %+v", c.Backend)
	}
	if c.Backend.Timeout != 5*time.Second || c.Backend.PageSize != 100 {
		t.Fatalf("Backend defaults wrong: %+v", c.Backend)
	}
	if c.Cache.IsConfigured() {
		t.Fatalf("Cache must not be configured by default: %+v", c.Cache)
	}
	if c.Cache.SchemaVersion != "v1" {
		t.Fatalf("Cache.SchemaVersion: want v1, got %q", c.Cache.SchemaVersion)
	}
	if c.Midtrans.IsConfigured() {
		t.Fatalf("Midtrans must not be configured by default: %+v", c.Midtrans)
	}
	if c.Midtrans.MockDelay != 2*time.Second {
		t.Fatalf("Midtrans.MockDelay: want 2s, got %v", c.Midtrans.MockDelay)
	}

	// Loader
	if c.Loader.FreshFor != 5*time.Minute || c.Loader.Watchdog != 10*time.Second {
		t.Fatalf("Loader defaults wrong: %+v", c.Loader)
	}

	// Tracing
	if c.Tracing.Enabled {
		t.Fatalf("Tracing.Enabled: want false, got true")
	}
	if c.Tracing.ServiceName != "zhivlux-store" || c.Tracing.Endpoint != "jaeger:4318" || c.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}

	// Logger
	if c.Logger.IsProd {
		t.Fatalf("Logger.IsProd: want false, got true")
	}
}

// Меняем окружение.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "STORE_TEST_OVR"

	t.Setenv(p+"_HTTP_ADDR", ":9999")
	t.Setenv(p+"_HTTP_GIN_MODE", "release")
	t.Setenv(p+"_HTTP_READ_TIMEOUT", "2s")
	t.Setenv(p+"_HTTP_GRACEFUL_TIMEOUT", "7s")

	t.Setenv(p+"_BACKEND_API_KEY", "xau_real_key")
	t.Setenv(p+"_BACKEND_BASE_URL", "https://acme-main.xata.sh/db/store")
	t.Setenv(p+"_BACKEND_PAGE_SIZE", "50")

	t.Setenv(p+"_CACHE_URL", "https://eu1-example.upstash.io")
	t.Setenv(p+"_CACHE_TOKEN", "tok-123")
	t.Setenv(p+"_CACHE_SCHEMA_VERSION", "v2")

	t.Setenv(p+"_MIDTRANS_SERVER_KEY", "SB-Mid-server-x")
	t.Setenv(p+"_MIDTRANS_CLIENT_KEY", "SB-Mid-client-x")
	t.Setenv(p+"_MIDTRANS_IS_PRODUCTION", "true")
	t.Setenv(p+"_MIDTRANS_MOCK_DELAY", "50ms")

	t.Setenv(p+"_LOADER_FRESH_FOR", "2m")
	t.Setenv(p+"_LOADER_WATCHDOG", "3s")

	t.Setenv(p+"_LOGGER_IS_PROD", "true")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	if c.HTTP.Addr != ":9999" || c.HTTP.GinMode != "release" {
		t.Fatalf("HTTP overrides wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadTimeout != 2*time.Second || c.HTTP.GracefulTimeout != 7*time.Second {
		t.Fatalf("HTTP timeouts override wrong: %+v", c.HTTP)
	}
	if !c.Backend.IsConfigured() || c.Backend.PageSize != 50 {
		t.Fatalf("Backend overrides wrong: %+v", c.Backend)
	}
	if !c.Cache.IsConfigured() || c.Cache.SchemaVersion != "v2" {
		t.Fatalf("Cache overrides wrong: %+v", c.Cache)
	}
	if !c.Midtrans.IsConfigured() || !c.Midtrans.Production || c.Midtrans.MockDelay != 50*time.Millisecond {
		t.Fatalf("Midtrans overrides wrong: %+v", c.Midtrans)
	}
	if c.Loader.FreshFor != 2*time.Minute || c.Loader.Watchdog != 3*time.Second {
		t.Fatalf("Loader overrides wrong: %+v", c.Loader)
	}
	if !c.Logger.IsProd {
		t.Fatalf("Logger.IsProd override wrong: %+v", c.Logger)
	}
}

// Заглушки из env распознаются как "не настроено".
func TestPlaceholders_NotConfigured(t *testing.T) {
	const p = "STORE_TEST_PH"

	t.Setenv(p+"_BACKEND_API_KEY", cfg.PlaceholderBackendKey)
	t.Setenv(p+"_BACKEND_BASE_URL", "https://acme-main.xata.sh/db/store")
	t.Setenv(p+"_CACHE_URL", cfg.PlaceholderCacheURL)
	t.Setenv(p+"_CACHE_TOKEN", "tok-123")
	t.Setenv(p+"_MIDTRANS_SERVER_KEY", cfg.PlaceholderServerKey)
	t.Setenv(p+"_MIDTRANS_CLIENT_KEY", "SB-Mid-client-x")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	if c.Backend.IsConfigured() {
		t.Fatalf("placeholder backend key must mean not configured")
	}
	if c.Cache.IsConfigured() {
		t.Fatalf("placeholder cache url must mean not configured")
	}
	if c.Midtrans.IsConfigured() {
		t.Fatalf("placeholder server key must mean not configured")
	}
}

// Невалидное значение окружения — ошибка загрузки.
func TestLoadWithPrefix_InvalidValue_ReturnsError(t *testing.T) {
	const p = "STORE_TEST_BAD"
	t.Setenv(p+"_HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := cfg.LoadWithPrefix(p); err == nil {
		t.Fatalf("expected error for invalid duration, got nil")
	}
}
