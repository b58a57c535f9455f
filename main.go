package main

import (
	"os"

	"github.com/gitpulse/gitpulse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
