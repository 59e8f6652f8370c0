package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.GPU.ID != 205 {
		t.Errorf("default gpu id = %d, want 205", cfg.GPU.ID)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %q, want info", cfg.Logging.Level)
	}
	if !cfg.Logging.Console {
		t.Error("console logging disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("gpu.id", 320)
	viper.Set("logging.level", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GPU.ID != 320 {
		t.Errorf("gpu id = %d, want 320", cfg.GPU.ID)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched keys keep their defaults.
	if !cfg.Logging.Console {
		t.Error("console default lost on partial override")
	}
}
