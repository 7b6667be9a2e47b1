package main

import (
	"fmt"
	"os"

	"github.com/AnyUserName/blurhash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[blurhash] error: %v\n", err)
		os.Exit(1)
	}
}
