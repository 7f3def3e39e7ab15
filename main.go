package main

import "github.com/yurukusa/cc-project-stats/cmd/cc-project-stats/commands"

func main() {
	commands.Execute()
}
