package main

import (
	"os"

	"github.com/laanwj/freedreno/cmd/dmesg2rd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
