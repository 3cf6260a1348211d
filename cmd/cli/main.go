package main

import (
	"log/slog"
	"os"

	"engler-house/cmd/cli/commands"
	"engler-house/internal/logging"
)

func Execute() {
	err := commands.GetRootCmd().Execute()
	if err != nil {
		slog.Error("Error executing command", "err", err)
		os.Exit(1)
	}
}

func init() {
	commands.GetRootCmd().AddCommand(commands.NewTestEmailCommand())
	commands.GetRootCmd().AddCommand(commands.NewCreateUserCommand())
}

func main() {
	logging.Init(os.Getenv("LOG_LEVEL"))
	Execute()
}
