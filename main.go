package main

import "github.com/cairn-bio/kiblt/cmd"

func main() {
	cmd.Execute()
}
