package main

import "smartwarga/cmd"

func main() {
	cmd.Execute()
}
