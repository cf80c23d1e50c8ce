package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/jobintake/internal/flagx"
)

// parseFlags populates Config from command-line flags:
//
//	-a string     careers API base URL
//	-t duration   submission timeout
//	-l duration   job lookup timeout
//	-d string     local database path
//	-debug        verbose logging
//
// os.Args is filtered with flagx.FilterArgs so flags owned by other loaders
// (-c/-config) do not trip the parser. Parse errors panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-l", "-d", "-debug"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "careers API base URL")
	fs.DurationVar(&cfg.SubmitTimeout, "t", cfg.SubmitTimeout, "application submit timeout")
	fs.DurationVar(&cfg.LookupTimeout, "l", cfg.LookupTimeout, "job lookup timeout")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path to the local database")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
