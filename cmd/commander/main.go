package main

import (
	"os"

	"github.com/lit-app/commander/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
