package main

import "contexere/cmd/contexere-cli/cmd"

func main() {
	cmd.Execute()
}
