package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		override string
		want     string
	}{
		{name: "development default", mode: Development, want: "http://localhost:8000"},
		{name: "production default", mode: Production, want: "https://k-stock-backend.onrender.com"},
		{name: "override wins in development", mode: Development, override: "http://10.0.0.5:9000", want: "http://10.0.0.5:9000"},
		{name: "override wins in production", mode: Production, override: "https://staging.example.com", want: "https://staging.example.com"},
		{name: "unknown mode", mode: Mode("test"), want: "http://localhost:8000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveBaseURL(tt.mode, tt.override); got != tt.want {
				t.Errorf("ResolveBaseURL(%q, %q) = %q; want %q", tt.mode, tt.override, got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"production":    Production,
		" PROD ":        Production,
		"Production":    Production,
		"development":   Development,
		"":              Development,
		"anything-else": Development,
	}
	for in, want := range tests {
		if got := ParseMode(in); got != want {
			t.Errorf("ParseMode(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestEnvironmentsTimeout(t *testing.T) {
	for mode, env := range Environments {
		if env.Timeout != 30*time.Second {
			t.Errorf("Environments[%s].Timeout = %v; want 30s", mode, env.Timeout)
		}
	}
}

// -----------------------------------------------------------------------------

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestNewConfigFromFile(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "")
	t.Setenv(EnvMode, "")

	path := writeConfig(t, `
name: k-stock-test
mode: production
port: 6000
network:
  timeout: 10
storage:
  enabled: true
  db_type: sqlite
  db_path: test.db
  retention_days: 7
`)

	cfg, err := NewConfig(path)
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}

	if cfg.Name != "k-stock-test" || cfg.Port != 6000 {
		t.Errorf("file values not applied: %+v", cfg.MConfig)
	}
	if cfg.Host != "127.0.0.1" || cfg.GrpcPort != 50051 {
		t.Errorf("defaults not kept: host %q grpc %d", cfg.Host, cfg.GrpcPort)
	}
	if cfg.ModeValue() != Production {
		t.Errorf("ModeValue() = %q; want production", cfg.ModeValue())
	}
	if got := cfg.BaseURL(); got != "https://k-stock-backend.onrender.com" {
		t.Errorf("BaseURL() = %q", got)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("Timeout() = %v; want 10s", cfg.Timeout())
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "http://override:8000")
	t.Setenv(EnvMode, "production")

	path := writeConfig(t, "mode: development\napi_base_url: http://from-file:8000\n")

	cfg, err := NewConfig(path)
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	if cfg.ModeValue() != Production {
		t.Errorf("ModeValue() = %q; want production from env", cfg.ModeValue())
	}
	if got := cfg.BaseURL(); got != "http://override:8000" {
		t.Errorf("BaseURL() = %q; want env override", got)
	}
}

func TestDefault(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "")
	t.Setenv(EnvMode, "")

	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if got := cfg.BaseURL(); got != "http://localhost:8000" {
		t.Errorf("BaseURL() = %q; want development default", got)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v; want 30s", cfg.Timeout())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "empty name", mutate: func(c *Config) { c.Name = "" }, wantErr: "name"},
		{name: "privileged port", mutate: func(c *Config) { c.Port = 80 }, wantErr: "port"},
		{name: "sqlite without path", mutate: func(c *Config) {
			c.Storage.Enabled = true
			c.Storage.DBPath = ""
		}, wantErr: "database path"},
		{name: "postgres without dsn", mutate: func(c *Config) {
			c.Storage.Enabled = true
			c.Storage.DBType = "postgres"
		}, wantErr: "connection string"},
		{name: "unknown db", mutate: func(c *Config) {
			c.Storage.Enabled = true
			c.Storage.DBType = "mysql"
		}, wantErr: "unsupported"},
		{name: "disabled storage is not checked", mutate: func(c *Config) {
			c.Storage.DBType = "mysql"
		}},
		{name: "zero timeout", mutate: func(c *Config) { c.Network.RequestTimeout = 0 }, wantErr: "timeout"},
		{name: "zero refresh interval", mutate: func(c *Config) {
			c.Refresh.Enabled = true
			c.Refresh.IntervalSeconds = 0
		}, wantErr: "refresh interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{MConfig: defaultModelConfig()}
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v; want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v; want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "")
	t.Setenv(EnvMode, "")

	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	cfg.Port = 7000

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := NewConfig(path)
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	if loaded.Port != 7000 {
		t.Errorf("Port = %d; want 7000", loaded.Port)
	}
}
