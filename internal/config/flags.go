package config

import (
	"flag"
	"os"
	"time"

	"github.com/webdevreplits/azure-01/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-d string   database connection string (DATABASE_URL form)
//	-f string   SQLite fallback file path
//	-s string   session token HMAC secret
//	-t int      session token validity, minutes
//	-w int      primary engine connect timeout, seconds
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-f", "-s", "-t", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.Database.URL, "d", config.Database.URL, "database connection string")
	fs.StringVar(&config.Database.SQLitePath, "f", config.Database.SQLitePath, "sqlite fallback file path")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionTTL := fs.Int("t", int(config.SessionTTL.Minutes()), "session token validity (in minutes)")
	connectTimeout := fs.Int("w", int(config.Database.ConnectTimeout.Seconds()), "primary engine connect timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
	config.Database.ConnectTimeout = time.Duration(*connectTimeout) * time.Second
}
