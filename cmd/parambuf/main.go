package main

import "github.com/momentics/parambuf/internal/cli"

// main hands control to the cobra command tree.
func main() {
	cli.Execute()
}
