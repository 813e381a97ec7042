package main

import "github.com/timvw/tmux-deck/cmd"

func main() {
	cmd.Execute()
}
