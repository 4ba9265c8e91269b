package main

import "github.com/theirongolddev/llmsim/cmd"

func main() {
	cmd.Execute()
}
