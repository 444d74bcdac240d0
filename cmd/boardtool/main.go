// boardtool is a CLI utility for inspecting and converting gridcast boards.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(os.Stdout, args)
	case "validate", "check":
		err = cmdValidate(os.Stdout, args)
	case "convert", "c":
		err = cmdConvert(os.Stdout, args)
	case "probe":
		err = cmdProbe(os.Stdout, args)
	case "map":
		err = cmdMap(os.Stdout, args)
	case "snapshot", "snap":
		err = cmdSnapshot(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`boardtool - gridcast board utility

Usage:
  boardtool <command> [options]

Commands:
  info <board>                      Show board dimensions, spawn and tile counts
  validate <board>...               Check boards parse and match the palette
  convert <in> <out>                Convert between .yaml and .rcbd by extension
  probe [-x X -y Y] [-angle DEG] [-rays N] [-fov DEG] <board>
                                    Cast rays and print every crossing
  map <board>                       Print the board as text rows
  snapshot [-w W -h H] [-scale N] <board> <out.png>
                                    Render the spawn view to a PNG

Boards are .yaml/.yml layouts or binary .rcbd files.

Examples:
  boardtool info boards/arena.yaml
  boardtool convert boards/arena.yaml boards/arena.rcbd
  boardtool probe -x 4.5 -y 4.5 -angle 0 boards/arena.rcbd
  boardtool snapshot -scale 2 boards/arena.yaml arena.png`)
}
