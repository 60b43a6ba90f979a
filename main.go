package main

import (
	"os"

	"github.com/abhisek/sbfquiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
