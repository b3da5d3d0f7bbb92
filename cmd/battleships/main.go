package main

import (
	"fmt"
	"os"

	"github.com/mcoot/issue-battleships/internal/cli"
)

func main() {
	// Optional .env; flags and real environment variables take precedence
	if err := cli.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	cli.Execute()
}
