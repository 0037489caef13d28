package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/andreabedini/souffle/cmd"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cmd.Execute(logger); err != nil {
		os.Exit(1)
	}
}
