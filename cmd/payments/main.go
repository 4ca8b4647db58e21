package main

import (
	"os"

	"github.com/rustyeddy/payments/cmd/payments/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
