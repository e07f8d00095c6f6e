package main

import (
	"fmt"
	"os"

	"github.com/railsafe/roster-backend-go/internal/cli"
	"github.com/railsafe/roster-backend-go/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	complianceCfg, fatigueCfg, err := config.LoadRules()
	if err != nil {
		return err
	}

	app := &cli.App{
		Compliance: complianceCfg,
		Fatigue:    fatigueCfg,
	}

	return cli.NewRootCmd(app).Execute()
}
