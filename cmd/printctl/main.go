package main

import (
	"os"

	"printhub/cmd/printctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
