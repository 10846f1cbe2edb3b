package main

import "github.com/OpenTraceLab/boardforge/cmd/boardforge/cmd"

func main() {
	cmd.Execute()
}
