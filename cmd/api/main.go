package main

import (
	"fmt"
	"os"
)

// version はビルド時に -ldflags で上書きされます。
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
