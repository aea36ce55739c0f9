package main

import "github.com/albertocavalcante/go-conanrecipe/internal/cli"

func main() {
	cli.Execute()
}
