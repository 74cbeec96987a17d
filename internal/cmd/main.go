package cmd

import (
	"bufio"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/lit-app/commander/internal/version"
)

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	cliName := args[0]

	// Logs go to stderr; command output goes through the UI.
	level := hclog.LevelFromString(os.Getenv("COMMANDER_LOG_LEVEL"))
	if level == hclog.NoLevel {
		level = hclog.Error
	}
	log := hclog.New(&hclog.LoggerOptions{
		Name:  cliName,
		Level: level,
	})

	if len(args) == 2 &&
		(args[1] == "-version" ||
			args[1] == "-v") {
		args = []string{cliName, "version"}
	}

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	initCommands(log, ui)

	return run(cliName, args[1:])
}

func run(name string, args []string) int {
	c := &cli.CLI{
		Name:     name,
		Args:     args,
		Version:  version.Version,
		Commands: Commands,
	}

	exitCode, err := c.Run()
	if err != nil {
		panic(err)
	}

	return exitCode
}
