package config

import (
	"os"
	"path/filepath"
	"testing"

	"wolfdice/internal/strategy"
)

func f64(v float64) *float64 { return &v }

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(writeConfig(t, "access_token: tok\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Currency != "btc" {
		t.Errorf("currency %q, want btc", cfg.Currency)
	}
	if cfg.Chance != 49.5 || cfg.Multiplier != 2.0 {
		t.Errorf("chance=%v multiplier=%v, want defaults", cfg.Chance, cfg.Multiplier)
	}
	if cfg.Strategy.Name != "martingale" || cfg.Strategy.LossStreakTrigger != 5 {
		t.Errorf("strategy defaults wrong: %+v", cfg.Strategy)
	}
	if cfg.Strategy.HighRiskInterval != 20 {
		t.Errorf("high_risk_interval %d, want 20", cfg.Strategy.HighRiskInterval)
	}
	if cfg.MaxWager() != 0.0001 {
		t.Errorf("max_bet %v, want default 0.0001", cfg.MaxWager())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("WOLFBET_ACCESS_TOKEN", "env-token")
	cfg, err := Load(writeConfig(t, "access_token: file-token\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AccessToken != "env-token" {
		t.Errorf("access token %q, want env-token", cfg.AccessToken)
	}
}

func TestValidate_Errors(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(writeConfig(t, "access_token: tok\n"))
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing token", func(c *Config) { c.AccessToken = "" }},
		{"zero base bet", func(c *Config) { c.BaseBet = 0 }},
		{"chance too high", func(c *Config) { c.Chance = 100 }},
		{"bad rule mode", func(c *Config) { c.RuleMode = "sideways" }},
		{"negative max bet", func(c *Config) { c.MaxBet = f64(-1) }},
		{"ceiling below base", func(c *Config) { c.BaseBet = 2; c.MaxBet = f64(1) }},
		{"stop loss above take profit", func(c *Config) { c.StopLoss = 1; c.TakeProfit = 0.5 }},
		{"unknown strategy", func(c *Config) { c.Strategy.Name = "labouchere" }},
		{"unknown cycle entry", func(c *Config) { c.Strategy.Cycle = []string{"flat", "nope"} }},
		{"bad switch mode", func(c *Config) { c.Strategy.SwitchMode = "hourly" }},
		{"bad randomized mode", func(c *Config) { c.Strategy.RandomizedMode = "gaussian" }},
		{"auto change without cycle", func(c *Config) { c.Strategy.AutoChange = true }},
		{"non-positive loss streak trigger", func(c *Config) {
			c.Strategy.AutoChange = true
			c.Strategy.Cycle = []string{"flat", "martingale"}
			c.Strategy.LossStreakTrigger = -1
		}},
	}
	for _, tt := range tests {
		cfg := base()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestTypedAccessors(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
access_token: tok
rule_mode: under
strategy:
  name: fibonacci
  auto_change: true
  switch_mode: on_win
  cycle: [fibonacci, flat]
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Variant() != strategy.Fibonacci {
		t.Errorf("variant %s, want fibonacci", cfg.Variant())
	}
	if cfg.SwitchMode() != strategy.SwitchOnWin {
		t.Errorf("switch mode %s, want on_win", cfg.SwitchMode())
	}
	cycle := cfg.Cycle()
	if len(cycle) != 2 || cycle[0] != strategy.Fibonacci || cycle[1] != strategy.Flat {
		t.Errorf("cycle %v", cycle)
	}
	if got := cfg.Params(); got.BaseWager != cfg.BaseBet || got.RandomizedMinMult != 1.02 {
		t.Errorf("params %+v", got)
	}
}

func TestLoad_ExplicitZeroMaxBetDisablesCeiling(t *testing.T) {
	cfg, err := Load(writeConfig(t, "access_token: tok\nmax_bet: 0\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxWager() != 0 {
		t.Errorf("max_bet %v, want 0 (ceiling disabled)", cfg.MaxWager())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("explicit zero ceiling should validate: %v", err)
	}
}

func TestCycle_NilWhenAutoChangeOff(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
access_token: tok
strategy:
  cycle: [flat, martingale]
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cycle() != nil {
		t.Error("cycle should be nil when auto_change is off")
	}
}
