package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-mode string  remote or local
//	-a string     address and port of the backend server (default from Config)
//	-i int        online check interval in seconds (default from Config)
//	-db string    local SQLite database path
//	-cat string   JSON catalog to import in local mode
//	-z string     time zone
//	-l string     log level
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-mode", "-a", "-i", "-db", "-cat", "-z", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	mode := fs.String("mode", string(cfg.Mode), "remote or local")
	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "local database path")
	fs.StringVar(&cfg.CatalogPath, "cat", cfg.CatalogPath, "article catalog (JSON) for local mode")
	fs.StringVar(&cfg.TimeZone, "z", cfg.TimeZone, "time zone")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Mode = Mode(*mode)
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
