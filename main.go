package main

import (
	"os"

	"github.com/abhisek/learnflow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
