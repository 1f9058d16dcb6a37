package main

import "keyless-stay/cmd"

func main() {
	cmd.Execute()
}
