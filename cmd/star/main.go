// Command star draws the outline of a six point star.
package main

import (
	"os"

	"github.com/gogpu/shapedemo"
	"github.com/gogpu/shapedemo/internal/cli"
)

func options() []shapedemo.Option {
	return []shapedemo.Option{shapedemo.WithTitle("6 point star")}
}

func main() {
	os.Exit(cli.Run(os.Args[1:], shapedemo.Star(), options()...))
}
