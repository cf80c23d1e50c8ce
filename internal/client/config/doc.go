// Package config loads runtime configuration for the jobintake CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: a .env file in the working directory is loaded first,
//     then JOBINTAKE_* variables (JOBINTAKE_API_URL, JOBINTAKE_TOKEN, ...).
//  3. Optional JSON file selected with -c / -config or $JOBINTAKE_CONFIG.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string     careers API base URL
//	-t duration   submission timeout (e.g. 60s)
//	-l duration   job lookup timeout
//	-d string     local database path
//	-debug        verbose logging
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://careers.example.com/api",
//	  "submit_timeout": "60s",
//	  "lookup_timeout": "15s",
//	  "db_path": "jobintake.db",
//	  "s3_region": "ap-south-1",
//	  "s3_endpoint": "http://127.0.0.1:9000",
//	  "debug": false
//	}
package config
