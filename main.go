package main

import (
	"os"

	"github.com/moeezmir/portfolio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
