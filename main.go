package main

import "pylens/src/handler/cli"

func main() {
	cli.Run()
}
