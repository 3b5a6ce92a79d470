package main

import (
	"os"

	"github.com/msto63/astview/cmd/astview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
