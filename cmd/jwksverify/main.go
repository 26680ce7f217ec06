package main

import (
	"fmt"
	"os"
)

// version se pisa con -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "jwksverify: %v\n", err)
		os.Exit(1)
	}
}
