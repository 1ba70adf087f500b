package main

import (
	"os"

	"github.com/atelier-sh/atelier/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
