package main

import (
	"encoding/json"
	"fmt"
	"os"

	"k-stock-insight/src/config"
	"k-stock-insight/src/helpers"
	"k-stock-insight/src/logger"
	"k-stock-insight/src/network"
	"k-stock-insight/src/store"

	"github.com/google/subcommands"
)

// newStore builds a store from the config file and the global flags.
func newStore() (*store.Store, error) {
	var (
		conf *config.Config
		err  error
	)
	if *configPath != "" {
		conf, err = config.NewConfig(*configPath)
	} else {
		conf, err = config.Default()
	}
	if err != nil {
		return nil, err
	}

	if *mode != "" {
		conf.Mode = string(config.ParseMode(*mode))
	}
	if *apiURL != "" {
		conf.APIBaseURL = *apiURL
	}
	conf.LogLevel = *logLevel
	// keep stdout for the JSON result
	conf.LogFile = ""

	appLogger := logger.New(os.Stderr, logger.ParseLevel(conf.LogLevel), "kstock")
	client, err := network.NewAPIClient(conf.BaseURL(), conf.Network, conf.Timeout(), appLogger.Named("APIClient"))
	if err != nil {
		return nil, err
	}
	return store.New(client, appLogger.Named("APIStore")), nil
}

// -----------------------------------------------------------------------------

func printJSON(v interface{}) subcommands.ExitStatus {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, helpers.ErrorMessage(err))
	return subcommands.ExitFailure
}

// run builds the store and hands it to fn, mapping errors to exit codes.
func run(fn func(s *store.Store) (interface{}, error)) subcommands.ExitStatus {
	s, err := newStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	v, err := fn(s)
	if err != nil {
		return fail(err)
	}
	return printJSON(v)
}
