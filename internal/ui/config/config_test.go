package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	if cfg.NavHeight != 80 {
		t.Errorf("unexpected nav height: %v", cfg.NavHeight)
	}
	if cfg.ScrolledThreshold != 50 {
		t.Errorf("unexpected scrolled threshold: %v", cfg.ScrolledThreshold)
	}
	if cfg.AnimationDuration != 500*time.Millisecond {
		t.Errorf("unexpected animation duration: %v", cfg.AnimationDuration)
	}
	if cfg.SectionOffset() != 180 {
		t.Errorf("expected section offset 180, got %v", cfg.SectionOffset())
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"nav height", func(c *Config) { c.NavHeight = 0 }, "nav height"},
		{"throttle", func(c *Config) { c.ScrollThrottle = 0 }, "scroll throttle"},
		{"threshold", func(c *Config) { c.Reveal.Threshold = 1.5 }, "reveal threshold"},
		{"breakpoints", func(c *Config) { c.Breakpoints.Tablet = 2000 }, "breakpoints"},
		{"purchase", func(c *Config) { c.Purchase.BaseURL = " " }, "purchase base url"},
		{"stagger", func(c *Config) { c.StaggerStep = -time.Millisecond }, "stagger step"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}
