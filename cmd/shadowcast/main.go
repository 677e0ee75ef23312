package main

import "chosenoffset.com/shadowcast/internal/cli"

func main() {
	cli.Execute()
}
