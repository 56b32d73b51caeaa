// cubesync - 3x3x3 cube simulator with scanning, solving and a websocket server.
package main

import (
	"github.com/SeamusWaldron/cubesync/internal/cli"
)

func main() {
	cli.Execute()
}
