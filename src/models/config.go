package models

// MConfig Structure
type MConfig struct {
	Name      string          `yaml:"name"`
	Host      string          `yaml:"host"`
	Port      int             `yaml:"port"`
	LogLevel  string          `yaml:"log_level"`
	PublicDir string          `yaml:"public_dir"`
	Storage   MStorageConfig  `yaml:"storage"`
	Data      MDataConfig     `yaml:"data"`
	Momentum  MMomentumConfig `yaml:"momentum"`
}

type MStorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

type MDataConfig struct {
	SettlementDir  string `yaml:"settlement_dir"`
	AccumulatedDir string `yaml:"accumulated_dir"`
	PricesFile     string `yaml:"prices_file"` // Optional closing-price CSV
	CalendarMIC    string `yaml:"calendar_mic"`
}

type MMomentumConfig struct {
	LookbackDays int `yaml:"lookback_days"`
	MinSamples   int `yaml:"min_samples"`
	TrendBand    int `yaml:"trend_band"`
	TopLimit     int `yaml:"top_limit"`
}
