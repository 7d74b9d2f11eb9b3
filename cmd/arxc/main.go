// Command arxc is the Arx ahead-of-time compiler front-end's CLI.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-arx/cmd/arxc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
