package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"wolfdice/internal/odds"
	"wolfdice/internal/strategy"
)

// Config holds all application configuration. Immutable once loaded.
type Config struct {
	AccessToken string `yaml:"access_token"`
	APIBaseURL  string `yaml:"api_base_url"`
	Currency    string `yaml:"currency"`
	Proxy       string `yaml:"proxy"`

	BaseBet     float64  `yaml:"base_bet"`
	Multiplier  float64  `yaml:"multiplier"`
	MaxBet      *float64 `yaml:"max_bet"` // explicit 0 disables the ceiling
	Chance      float64  `yaml:"chance"`
	RuleMode    string   `yaml:"rule_mode"`
	TakeProfit  float64  `yaml:"take_profit"`
	StopLoss    float64  `yaml:"stop_loss"`
	CooldownSec float64  `yaml:"cooldown_sec"`
	CoverLoss   bool     `yaml:"cover_loss"`

	AutoStart      bool `yaml:"auto_start"`
	AutoStartDelay int  `yaml:"auto_start_delay"`

	Strategy struct {
		Name              string   `yaml:"name"`
		AutoChange        bool     `yaml:"auto_change"`
		SwitchMode        string   `yaml:"switch_mode"`
		LossStreakTrigger int      `yaml:"loss_streak_trigger"`
		Cycle             []string `yaml:"cycle"`

		JackpotChance   float64 `yaml:"jackpot_chance"`
		JackpotRaiseMin float64 `yaml:"jackpot_raise_min_pct"`
		JackpotRaiseMax float64 `yaml:"jackpot_raise_max_pct"`

		HighRiskChance   float64 `yaml:"high_risk_chance"`
		HighRiskRaiseMin float64 `yaml:"high_risk_raise_min_pct"`
		HighRiskRaiseMax float64 `yaml:"high_risk_raise_max_pct"`
		HighRiskInterval int     `yaml:"high_risk_interval"`

		RandomizedMode    string  `yaml:"randomized_mode"`
		RandomizedMinMult float64 `yaml:"randomized_min_mult"`
		RandomizedMaxMult float64 `yaml:"randomized_max_mult"`
	} `yaml:"strategy"`

	Retry struct {
		MaxAttempts int `yaml:"max_attempts"` // 0 = retry forever
	} `yaml:"retry"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`

	Metrics struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"metrics"`

	Schedule struct {
		SessionCron string `yaml:"session_cron"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("WOLFBET_ACCESS_TOKEN"); v != "" {
		cfg.AccessToken = v
	}
	if v := os.Getenv("WOLFBET_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.ListenAddr = v
	}

	// Defaults
	if cfg.Currency == "" {
		cfg.Currency = "btc"
	}
	if cfg.BaseBet == 0 {
		cfg.BaseBet = 0.00000001
	}
	if cfg.Multiplier == 0 {
		cfg.Multiplier = 2.0
	}
	if cfg.Chance == 0 {
		cfg.Chance = 49.5
	}
	if cfg.RuleMode == "" {
		cfg.RuleMode = "auto"
	}
	if cfg.MaxBet == nil {
		ceiling := 0.0001
		cfg.MaxBet = &ceiling
	}
	if cfg.TakeProfit == 0 {
		cfg.TakeProfit = 0.0005
	}
	if cfg.StopLoss == 0 {
		cfg.StopLoss = -0.0005
	}
	if cfg.CooldownSec == 0 {
		cfg.CooldownSec = 1.0
	}
	if cfg.AutoStartDelay == 0 {
		cfg.AutoStartDelay = 5
	}
	if cfg.Strategy.Name == "" {
		cfg.Strategy.Name = "martingale"
	}
	if cfg.Strategy.SwitchMode == "" {
		cfg.Strategy.SwitchMode = "on_loss_streak"
	}
	if cfg.Strategy.LossStreakTrigger == 0 {
		cfg.Strategy.LossStreakTrigger = 5
	}
	if cfg.Strategy.JackpotChance == 0 {
		cfg.Strategy.JackpotChance = 1.0
	}
	if cfg.Strategy.JackpotRaiseMin == 0 {
		cfg.Strategy.JackpotRaiseMin = 1.02
	}
	if cfg.Strategy.JackpotRaiseMax == 0 {
		cfg.Strategy.JackpotRaiseMax = 1.05
	}
	if cfg.Strategy.HighRiskChance == 0 {
		cfg.Strategy.HighRiskChance = 5.0
	}
	if cfg.Strategy.HighRiskRaiseMin == 0 {
		cfg.Strategy.HighRiskRaiseMin = 1.10
	}
	if cfg.Strategy.HighRiskRaiseMax == 0 {
		cfg.Strategy.HighRiskRaiseMax = 1.20
	}
	if cfg.Strategy.HighRiskInterval == 0 {
		cfg.Strategy.HighRiskInterval = 20
	}
	if cfg.Strategy.RandomizedMode == "" {
		cfg.Strategy.RandomizedMode = "multiplier"
	}
	if cfg.Strategy.RandomizedMinMult == 0 {
		cfg.Strategy.RandomizedMinMult = 1.02
	}
	if cfg.Strategy.RandomizedMaxMult == 0 {
		cfg.Strategy.RandomizedMaxMult = 1.35
	}

	return cfg, nil
}

// Validate checks that all required fields are set and parseable.
func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return fmt.Errorf("access_token is required")
	}
	if c.BaseBet <= 0 {
		return fmt.Errorf("base_bet must be positive")
	}
	if c.Chance <= 0 || c.Chance >= 100 {
		return fmt.Errorf("chance must be in (0, 100)")
	}
	switch odds.Mode(c.RuleMode) {
	case odds.ModeOver, odds.ModeUnder, odds.ModeAuto:
	default:
		return fmt.Errorf("rule_mode must be over, under or auto")
	}
	if ceiling := c.MaxWager(); ceiling < 0 {
		return fmt.Errorf("max_bet must not be negative")
	} else if ceiling > 0 && ceiling < c.BaseBet {
		return fmt.Errorf("max_bet must be at least base_bet")
	}
	if c.StopLoss >= c.TakeProfit {
		return fmt.Errorf("stop_loss must be below take_profit")
	}
	if _, err := strategy.ParseVariant(c.Strategy.Name); err != nil {
		return fmt.Errorf("strategy.name: %w", err)
	}
	for _, name := range c.Strategy.Cycle {
		if _, err := strategy.ParseVariant(name); err != nil {
			return fmt.Errorf("strategy.cycle: %w", err)
		}
	}
	if _, err := strategy.ParseSwitchMode(c.Strategy.SwitchMode); err != nil {
		return fmt.Errorf("strategy.switch_mode: %w", err)
	}
	switch strategy.RandomizedMode(c.Strategy.RandomizedMode) {
	case strategy.RandomizedMultiplier, strategy.RandomizedUniform:
	default:
		return fmt.Errorf("strategy.randomized_mode must be multiplier or uniform")
	}
	if c.Strategy.AutoChange && len(c.Strategy.Cycle) == 0 {
		return fmt.Errorf("strategy.cycle is required when auto_change is enabled")
	}
	if c.Strategy.AutoChange && c.Strategy.LossStreakTrigger < 1 {
		return fmt.Errorf("strategy.loss_streak_trigger must be positive")
	}
	return nil
}

// MaxWager returns the bet ceiling; 0 means unbounded.
func (c *Config) MaxWager() float64 {
	if c.MaxBet == nil {
		return 0
	}
	return *c.MaxBet
}

// Variant returns the validated starting strategy.
func (c *Config) Variant() strategy.Variant {
	v, _ := strategy.ParseVariant(c.Strategy.Name)
	return v
}

// Cycle returns the validated strategy cycle, or nil when auto-change is off.
func (c *Config) Cycle() []strategy.Variant {
	if !c.Strategy.AutoChange {
		return nil
	}
	cycle := make([]strategy.Variant, 0, len(c.Strategy.Cycle))
	for _, name := range c.Strategy.Cycle {
		v, _ := strategy.ParseVariant(name)
		cycle = append(cycle, v)
	}
	return cycle
}

// SwitchMode returns the validated strategy switch mode.
func (c *Config) SwitchMode() strategy.SwitchMode {
	m, _ := strategy.ParseSwitchMode(c.Strategy.SwitchMode)
	return m
}

// Mode returns the validated bet direction mode.
func (c *Config) Mode() odds.Mode {
	return odds.Mode(c.RuleMode)
}

// Params returns the wager calculator tunables.
func (c *Config) Params() strategy.Params {
	return strategy.Params{
		BaseWager:         c.BaseBet,
		Multiplier:        c.Multiplier,
		JackpotChance:     c.Strategy.JackpotChance,
		JackpotRaiseMin:   c.Strategy.JackpotRaiseMin,
		JackpotRaiseMax:   c.Strategy.JackpotRaiseMax,
		HighRiskChance:    c.Strategy.HighRiskChance,
		HighRiskRaiseMin:  c.Strategy.HighRiskRaiseMin,
		HighRiskRaiseMax:  c.Strategy.HighRiskRaiseMax,
		PulseInterval:     c.Strategy.HighRiskInterval,
		RandomizedMode:    strategy.RandomizedMode(c.Strategy.RandomizedMode),
		RandomizedMinMult: c.Strategy.RandomizedMinMult,
		RandomizedMaxMult: c.Strategy.RandomizedMaxMult,
	}
}

// RoundDelay returns the configured wait between rounds.
func (c *Config) RoundDelay() time.Duration {
	return time.Duration(c.CooldownSec * float64(time.Second))
}
