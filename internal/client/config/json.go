package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/jobintake/internal/flagx"
	"github.com/dmitrijs2005/jobintake/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// accept "45s"-style strings or integer nanoseconds.
type JsonConfig struct {
	APIBaseURL    string         `json:"api_base_url"`
	SubmitTimeout timex.Duration `json:"submit_timeout"`
	LookupTimeout timex.Duration `json:"lookup_timeout"`
	AccessToken   string         `json:"access_token"`
	DBPath        string         `json:"db_path"`
	S3Region      string         `json:"s3_region"`
	S3Endpoint    string         `json:"s3_endpoint"`
	S3AccessKey   string         `json:"s3_access_key"`
	S3SecretKey   string         `json:"s3_secret_key"`
	Debug         *bool          `json:"debug"`
}

// parseJson overlays Config with the file named by -c/-config (or
// $JOBINTAKE_CONFIG). Keys missing from the file leave the current value.
// Read and decode errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.APIBaseURL, jc.APIBaseURL)
	overlay(&cfg.AccessToken, jc.AccessToken)
	overlay(&cfg.DBPath, jc.DBPath)
	overlay(&cfg.S3Region, jc.S3Region)
	overlay(&cfg.S3Endpoint, jc.S3Endpoint)
	overlay(&cfg.S3AccessKey, jc.S3AccessKey)
	overlay(&cfg.S3SecretKey, jc.S3SecretKey)
	if jc.SubmitTimeout.Duration > 0 {
		cfg.SubmitTimeout = jc.SubmitTimeout.Duration
	}
	if jc.LookupTimeout.Duration > 0 {
		cfg.LookupTimeout = jc.LookupTimeout.Duration
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
