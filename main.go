package main

import (
	"fmt"
	"os"

	"github.com/AnyUserName/laplace-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "laplace: %v\n", err)
		os.Exit(1)
	}
}
