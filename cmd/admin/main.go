package main

import (
	"os"

	"github.com/honeycarbs/silver-talent/internal/config"
)

func main() {
	if err := newRootCmd(config.Load).Execute(); err != nil {
		os.Exit(1)
	}
}
