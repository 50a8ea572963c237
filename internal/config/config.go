package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken     string `yaml:"bot_token"`
		ChatID       string `yaml:"chat_id"`
		AdminUserID  int64  `yaml:"admin_user_id"`
		ApprovalFile string `yaml:"approval_file"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider  string   `yaml:"provider"` // "yahoo" or "binance"
		Symbols   []string `yaml:"symbols"`
		Interval  string   `yaml:"interval"`
		Lookback  int      `yaml:"lookback"` // bars fetched per scan
		APIKey    string   `yaml:"api_key"`
		APISecret string   `yaml:"api_secret"`
	} `yaml:"data_source"`
	Scan struct {
		Cron            string `yaml:"cron"`
		Workers         int    `yaml:"workers"`
		MinBars         int    `yaml:"min_bars"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
		FetchTimeoutSec int    `yaml:"fetch_timeout_seconds"`
	} `yaml:"scan"`
	Strategy struct {
		RSIPeriod             int     `yaml:"rsi_period"`
		RSIOversold           float64 `yaml:"rsi_oversold"`
		RSIOverbought         float64 `yaml:"rsi_overbought"`
		VolumeSpikeMultiplier float64 `yaml:"volume_spike_multiplier"`
		SRLookback            int     `yaml:"sr_lookback"`
		SRThresholdPct        float64 `yaml:"sr_threshold_pct"` // percent, e.g. 0.5
	} `yaml:"strategy"`
	Risk struct {
		MinRiskReward float64 `yaml:"min_risk_reward"`
		StopLossPct   float64 `yaml:"stop_loss_pct"`
		Target1Pct    float64 `yaml:"target1_pct"`
		Target2Pct    float64 `yaml:"target2_pct"`
	} `yaml:"risk"`
	Chart struct {
		Enabled       bool   `yaml:"enabled"`
		Dir           string `yaml:"dir"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"chart"`
	Market struct {
		Timezone string `yaml:"timezone"` // empty means always open
		Open     string `yaml:"open"`     // "09:15"
		Close    string `yaml:"close"`    // "15:30"
	} `yaml:"market"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// defaultSymbols is the NIFTY 50 universe on Yahoo Finance tickers.
var defaultSymbols = []string{
	"RELIANCE.NS", "TCS.NS", "HDFCBANK.NS", "INFY.NS", "HINDUNILVR.NS",
	"ICICIBANK.NS", "KOTAKBANK.NS", "SBIN.NS", "BHARTIARTL.NS", "ITC.NS",
	"AXISBANK.NS", "LT.NS", "ASIANPAINT.NS", "MARUTI.NS", "HCLTECH.NS",
	"SUNPHARMA.NS", "BAJFINANCE.NS", "TITAN.NS", "ULTRACEMCO.NS", "NESTLEIND.NS",
	"WIPRO.NS", "ONGC.NS", "NTPC.NS", "POWERGRID.NS", "TECHM.NS",
	"M&M.NS", "BAJAJFINSV.NS", "TATASTEEL.NS", "COALINDIA.NS", "ADANIPORTS.NS",
	"DIVISLAB.NS", "INDUSINDBK.NS", "DRREDDY.NS", "GRASIM.NS", "CIPLA.NS",
	"EICHERMOT.NS", "JSWSTEEL.NS", "HINDALCO.NS", "HEROMOTOCO.NS", "BRITANNIA.NS",
	"TATAMOTORS.NS", "APOLLOHOSP.NS", "SBILIFE.NS", "BPCL.NS", "UPL.NS",
	"BAJAJ-AUTO.NS", "TATACONSUM.NS", "ADANIENT.NS", "HDFCLIFE.NS", "LTIM.NS",
}

// Load reads config from a YAML file, then applies environment variable
// overrides and fills in defaults. A missing file is not an error so the
// bot can run on environment variables alone.
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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("ADMIN_USER_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.AdminUserID = id
		}
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("BINANCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("BINANCE_API_SECRET"); v != "" {
		cfg.DataSource.APISecret = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Scan.Cron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Telegram.ApprovalFile == "" {
		cfg.Telegram.ApprovalFile = "data/approved_users.json"
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if len(cfg.DataSource.Symbols) == 0 {
		cfg.DataSource.Symbols = defaultSymbols
	}
	if cfg.DataSource.Interval == "" {
		cfg.DataSource.Interval = "5m"
	}
	if cfg.DataSource.Lookback == 0 {
		cfg.DataSource.Lookback = 100
	}
	if cfg.Scan.Cron == "" {
		cfg.Scan.Cron = "@every 1m"
	}
	if cfg.Scan.Workers == 0 {
		cfg.Scan.Workers = 10
	}
	if cfg.Scan.MinBars == 0 {
		cfg.Scan.MinBars = 50
	}
	if cfg.Scan.CacheTTLSeconds == 0 {
		cfg.Scan.CacheTTLSeconds = 25
	}
	if cfg.Scan.FetchTimeoutSec == 0 {
		cfg.Scan.FetchTimeoutSec = 15
	}
	if cfg.Strategy.RSIPeriod == 0 {
		cfg.Strategy.RSIPeriod = 14
	}
	if cfg.Strategy.RSIOversold == 0 {
		cfg.Strategy.RSIOversold = 30
	}
	if cfg.Strategy.RSIOverbought == 0 {
		cfg.Strategy.RSIOverbought = 70
	}
	if cfg.Strategy.VolumeSpikeMultiplier == 0 {
		cfg.Strategy.VolumeSpikeMultiplier = 1.5
	}
	if cfg.Strategy.SRLookback == 0 {
		cfg.Strategy.SRLookback = 50
	}
	if cfg.Strategy.SRThresholdPct == 0 {
		cfg.Strategy.SRThresholdPct = 0.5
	}
	if cfg.Risk.MinRiskReward == 0 {
		cfg.Risk.MinRiskReward = 1.5
	}
	if cfg.Risk.StopLossPct == 0 {
		cfg.Risk.StopLossPct = 0.8
	}
	if cfg.Risk.Target1Pct == 0 {
		cfg.Risk.Target1Pct = 1.2
	}
	if cfg.Risk.Target2Pct == 0 {
		cfg.Risk.Target2Pct = 2.0
	}
	if cfg.Chart.Dir == "" {
		cfg.Chart.Dir = "data/charts"
	}
	if cfg.Chart.RetentionDays == 0 {
		cfg.Chart.RetentionDays = 1
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/signal_sentry.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Telegram.AdminUserID == 0 {
		return fmt.Errorf("telegram.admin_user_id is required")
	}
	if c.DataSource.Provider != "yahoo" && c.DataSource.Provider != "binance" {
		return fmt.Errorf("data_source.provider must be yahoo or binance, got %q", c.DataSource.Provider)
	}
	if len(c.DataSource.Symbols) == 0 {
		return fmt.Errorf("data_source.symbols must not be empty")
	}
	if c.Scan.Workers <= 0 {
		return fmt.Errorf("scan.workers must be positive")
	}
	if c.Risk.MinRiskReward <= 0 {
		return fmt.Errorf("risk.min_risk_reward must be positive")
	}
	if c.Risk.StopLossPct < 0 || c.Risk.Target1Pct < 0 || c.Risk.Target2Pct < 0 {
		return fmt.Errorf("risk percentages must not be negative")
	}
	return nil
}
