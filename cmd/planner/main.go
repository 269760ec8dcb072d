package main

import "github.com/andrescamacho/planner-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
