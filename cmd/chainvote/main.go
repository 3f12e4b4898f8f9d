package main

import (
	"os"

	"chainvote/cmd/chainvote/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
