package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvAPIBaseURL    = "JOBINTAKE_API_URL"
	EnvSubmitTimeout = "JOBINTAKE_SUBMIT_TIMEOUT"
	EnvLookupTimeout = "JOBINTAKE_LOOKUP_TIMEOUT"
	EnvAccessToken   = "JOBINTAKE_TOKEN"
	EnvDBPath        = "JOBINTAKE_DB"
	EnvS3Region      = "JOBINTAKE_S3_REGION"
	EnvS3Endpoint    = "JOBINTAKE_S3_ENDPOINT"
	EnvS3AccessKey   = "JOBINTAKE_S3_ACCESS_KEY"
	EnvS3SecretKey   = "JOBINTAKE_S3_SECRET_KEY"
	EnvDebug         = "JOBINTAKE_DEBUG"
)

// envFile is loaded into the process environment when present. Variables
// already set are not overridden.
var envFile = ".env"

// parseEnv overlays Config with JOBINTAKE_* variables. Unset variables keep
// the current value; malformed durations or booleans panic, like the other
// loaders.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	setString(&cfg.APIBaseURL, EnvAPIBaseURL)
	setDuration(&cfg.SubmitTimeout, EnvSubmitTimeout)
	setDuration(&cfg.LookupTimeout, EnvLookupTimeout)
	setString(&cfg.AccessToken, EnvAccessToken)
	setString(&cfg.DBPath, EnvDBPath)
	setString(&cfg.S3Region, EnvS3Region)
	setString(&cfg.S3Endpoint, EnvS3Endpoint)
	setString(&cfg.S3AccessKey, EnvS3AccessKey)
	setString(&cfg.S3SecretKey, EnvS3SecretKey)

	if v, ok := os.LookupEnv(EnvDebug); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.Debug = b
	}
}

func setString(dst *string, name string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, name string) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
