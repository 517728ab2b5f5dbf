package main

import (
	"os"

	"github.com/abhisek/edupath/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
