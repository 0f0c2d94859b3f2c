package main

import "github.com/codrin-preda/gamemna/internal/cli"

func main() {
	cli.Execute()
}
