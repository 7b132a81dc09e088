package main

import "github.com/vartaverse/varta/cli/internal/cmd"

func main() {
	cmd.Execute()
}
