package main

import (
	"github.com/mfreeman/sketchdash/internal/cli"
)

func main() {
	cli.Execute()
}
