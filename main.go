package main

import "dario.lol/hover/cmd"

func main() {
	cmd.Execute()
}
