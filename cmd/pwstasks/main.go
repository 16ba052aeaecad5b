package main

import "github.com/aalvaropc/pwstasks/internal/cli"

func main() {
	cli.Execute()
}
