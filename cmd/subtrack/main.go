// Package main is the entry point for the subtrack command line tool.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/subscription-tracker/backend/internal/cli"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	if err := cli.NewRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}
