package main

import "modelwatch/cmd"

func main() {
	cmd.Execute()
}
