package models

// MConfig Structure
type MConfig struct {
	Name       string         `yaml:"name"`
	Mode       string         `yaml:"mode"`         // "development" or "production"
	APIBaseURL string         `yaml:"api_base_url"` // Optional override of the environment table
	Host       string         `yaml:"host"`
	Port       int            `yaml:"port"`
	LogLevel   string         `yaml:"log_level"`
	LogFile    string         `yaml:"log_file"`
	GrpcHost   string         `yaml:"grpc_host"`
	GrpcPort   int            `yaml:"grpc_port"`
	Storage    MStorageConfig `yaml:"storage"`
	Network    MNetworkConfig `yaml:"network"`
	Refresh    MRefreshConfig `yaml:"refresh"`
}

type MStorageConfig struct {
	Enabled            bool   `yaml:"enabled"`
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	RetentionDays      int    `yaml:"retention_days"`
}

type MNetworkConfig struct {
	RequestTimeout int    `yaml:"timeout"` // seconds, applied to every call
	Proxy          string `yaml:"proxy"`
	UserAgent      string `yaml:"user_agent"`
}

type MRefreshConfig struct {
	Enabled         bool   `yaml:"enabled"`
	IntervalSeconds int    `yaml:"interval_seconds"`
	MarketHoursOnly bool   `yaml:"market_hours_only"`
	Market          string `yaml:"market"` // ISO 10383 MIC, e.g. "xkrx"
}
