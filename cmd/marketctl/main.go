package main

import "github.com/fjod/go_market/internal/cli"

func main() {
	cli.Execute()
}
