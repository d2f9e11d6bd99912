package main

import "github.com/gpahal/mtrand/internal/cli"

func main() {
	cli.Execute()
}
