package main

import "quickbite/cmd"

func main() {
	cmd.Start()
}
