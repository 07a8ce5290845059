package main

import "depsprobe/internal/cli"

func main() {
	cli.Execute()
}
