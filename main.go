package main

import (
	"os"

	"scaling-bench/cmd"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.WithError(err).Error("Failed to execute command")
		os.Exit(1)
	}
}
