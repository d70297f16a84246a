package main

import (
	"log/slog"
	"os"

	"github.com/mmynk/pennypool/internal/commands"
	"github.com/mmynk/pennypool/pkg/logging"
)

func main() {
	logging.Setup(slog.LevelWarn)

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
