package main

import (
	"os"

	"github.com/mathis-deconchat/github-repo-qualifier/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
