package main

import "github.com/frontcamp/proj2gpt/internal/cli"

func main() {
	cli.Execute()
}
