package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultServerConfigIsValid(t *testing.T) {
	cfg := DefaultServerConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.EvaluatorTimeout != 30*time.Second {
		t.Errorf("EvaluatorTimeout = %v", cfg.EvaluatorTimeout)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "langparse.yaml", `
addr: ":9090"
log_format: json
nextflow_command: ["java", "-jar", "/opt/nextflow.jar", "config", "-properties"]
evaluator_timeout: 45s
cache_size: 0
`)
	cfg := DefaultServerConfig()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	want := DefaultServerConfig()
	want.Addr = ":9090"
	want.LogFormat = "json"
	want.NextflowCommand = []string{"java", "-jar", "/opt/nextflow.jar", "config", "-properties"}
	want.EvaluatorTimeout = 45 * time.Second
	want.CacheSize = 0
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	cfg := DefaultServerConfig()
	if err := cfg.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := writeFile(t, "bad.yaml", "addr: [unterminated\n")
	if err := cfg.LoadFile(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadEnv(t *testing.T) {
	cfg := DefaultServerConfig()
	err := cfg.LoadEnv(mapLookup(map[string]string{
		"LANGPARSE_ADDR":            "127.0.0.1:7000",
		"LANGPARSE_WOMTOOL_COMMAND": "java -jar /opt/womtool.jar",
		"LANGPARSE_CLONE_TIMEOUT":   "90s",
		"LANGPARSE_CACHE_SIZE":      "16",
		"LANGPARSE_LOG_LEVEL":       "   ",
		"UNRELATED_ADDR":            ":1",
	}))
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if cfg.Addr != "127.0.0.1:7000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if diff := cmp.Diff([]string{"java", "-jar", "/opt/womtool.jar"}, cfg.WomtoolCommand); diff != "" {
		t.Errorf("WomtoolCommand mismatch (-want +got):\n%s", diff)
	}
	if cfg.CloneTimeout != 90*time.Second || cfg.CacheSize != 16 {
		t.Errorf("CloneTimeout = %v, CacheSize = %d", cfg.CloneTimeout, cfg.CacheSize)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("blank variable overrode LogLevel: %q", cfg.LogLevel)
	}
}

func TestLoadEnv_Errors(t *testing.T) {
	tests := map[string]string{
		"LANGPARSE_EVALUATOR_TIMEOUT": "soon",
		"LANGPARSE_CACHE_SIZE":        "many",
	}
	for k, v := range tests {
		cfg := DefaultServerConfig()
		err := cfg.LoadEnv(mapLookup(map[string]string{k: v}))
		if err == nil || !strings.Contains(err.Error(), k) {
			t.Errorf("%s=%s: err = %v, want error naming the variable", k, v, err)
		}
	}
}

func TestLoad_Layering(t *testing.T) {
	path := writeFile(t, "langparse.yaml", "addr: \":9090\"\nlog_level: warn\n")
	envFile := writeFile(t, ".env", "LANGPARSE_LOG_LEVEL=debug\nLANGPARSE_DB_PATH=/var/lib/langparse.db\n")
	t.Setenv("LANGPARSE_DB_PATH", "/from/env.db")
	// godotenv.Load sets variables on the process.
	t.Cleanup(func() { os.Unsetenv("LANGPARSE_LOG_LEVEL") })

	cfg, err := Load(path, envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want file value", cfg.Addr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want .env value", cfg.LogLevel)
	}
	if cfg.DBPath != "/from/env.db" {
		t.Errorf("DBPath = %q, want process env to win over .env", cfg.DBPath)
	}
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	if _, err := Load("", filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerConfig)
		want   string
	}{
		{"bad format", func(c *ServerConfig) { c.LogFormat = "xml" }, "log_format"},
		{"no evaluator", func(c *ServerConfig) { c.NextflowCommand = nil }, "nextflow_command"},
		{"no womtool", func(c *ServerConfig) { c.WomtoolCommand = []string{} }, "womtool_command"},
		{"zero timeout", func(c *ServerConfig) { c.EvaluatorTimeout = 0 }, "evaluator_timeout"},
		{"negative cache", func(c *ServerConfig) { c.CacheSize = -1 }, "cache_size"},
		{"no addr", func(c *ServerConfig) { c.Addr = "" }, "addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultServerConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}
}
