// Command kstock runs one API store operation against the K-Stock Insight
// backend and prints the result as JSON.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

var (
	configPath = flag.String("config", "", "path to config file (built-in defaults when empty)")
	apiURL     = flag.String("api", "", "backend base URL, overrides mode and config")
	mode       = flag.String("mode", "", "build mode: development or production")
	logLevel   = flag.String("log", "ERROR", "log level")
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range commands {
		commander.Register(c, "api")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
