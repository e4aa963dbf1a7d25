package main

import (
	"os"

	"github.com/arzan03/RetailStoreSeed/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
