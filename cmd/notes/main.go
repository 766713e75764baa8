package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	Execute()
}

func fatal(msg string, err error) {
	color.New(color.FgRed).Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
