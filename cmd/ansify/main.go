package main

import "ansify/internal/cli"

func main() {
	cli.Execute()
}
