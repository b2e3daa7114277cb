package main

import "cdrlink/cmd/cdrlink-cli/cmd"

func main() {
	cmd.Execute()
}
