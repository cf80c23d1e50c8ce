package config

import "time"

// Config holds runtime settings for the jobintake CLI.
type Config struct {
	APIBaseURL    string
	SubmitTimeout time.Duration
	LookupTimeout time.Duration
	// AccessToken, when set, takes precedence over the token stored with
	// the token command.
	AccessToken string
	DBPath      string

	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	Debug bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api"
	c.SubmitTimeout = 60 * time.Second
	c.LookupTimeout = 15 * time.Second
	c.DBPath = "jobintake.db"
}

// S3Enabled reports whether resumes may be picked from a bucket.
func (c *Config) S3Enabled() bool {
	return c.S3Region != "" || c.S3Endpoint != ""
}

// LoadConfig applies defaults, then the environment (including a .env
// file), then a JSON file, then command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
