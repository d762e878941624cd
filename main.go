package main

import (
	"os"

	"github.com/gitmend/gitmend/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
