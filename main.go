package main

import (
	cmd "github.com/promptlift/cli/cmd"
)

func main() {
	cmd.Execute()
}
