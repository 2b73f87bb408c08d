package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/danmuck/setupctl/internal/logging"
	"github.com/danmuck/setupctl/internal/provision"
	"github.com/danmuck/setupctl/internal/setup"
)

// defaultConfigPath is optional; its absence means pure defaults. There are
// no flags or subcommands.
const defaultConfigPath = "/etc/setupctl/config.toml"

func main() {
	cfg, err := resolveConfig(defaultConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setupctl: %v\n", err)
		os.Exit(1)
	}

	logging.ConfigureRuntime(cfg.LogPath)

	svc, err := setup.NewServiceWithConfig(cfg)
	if err == nil {
		err = svc.Run()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "setupctl: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func resolveConfig(path string) (setup.ServiceConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return setup.DefaultServiceConfig(), nil
	}
	return loadServiceConfig(path)
}

// exitCode maps a run failure to the process exit status: 1 for the
// privilege guard and generic errors, otherwise the failing command's own
// exit status.
func exitCode(err error) int {
	if errors.Is(err, provision.ErrNotRoot) {
		return 1
	}
	var cmdErr *provision.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Exit > 0 {
		return int(cmdErr.Exit)
	}
	return 1
}
