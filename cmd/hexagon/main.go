// Command hexagon draws a filled yellow hexagon on a gray background.
//
// Press Escape to quit.
package main

import (
	"os"

	"github.com/gogpu/shapedemo"
	"github.com/gogpu/shapedemo/internal/cli"
)

func options() []shapedemo.Option {
	return []shapedemo.Option{
		shapedemo.WithTitle("HEXAGONO"),
		shapedemo.WithQuitOnEscape(true),
	}
}

func main() {
	os.Exit(cli.Run(os.Args[1:], shapedemo.Hexagon(), options()...))
}
