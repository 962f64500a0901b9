// cube3d - an animated 3x3x3 cube for the terminal.
package main

import (
	"github.com/SeamusWaldron/cube3d/internal/cli"
)

func main() {
	cli.Execute()
}
