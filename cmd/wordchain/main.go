package main

import "github.com/mcoot/wordchain/internal/cli"

func main() {
	cli.Execute()
}
