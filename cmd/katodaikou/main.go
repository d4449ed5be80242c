// Package main is the entry point for the katodaikou bot.
package main

import (
	"os"

	"github.com/mume-dayo/kato-daikou/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
