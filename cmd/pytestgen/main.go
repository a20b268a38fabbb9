package main

import "github.com/mvp-joe/pytestgen/internal/cli"

func main() {
	cli.Execute()
}
