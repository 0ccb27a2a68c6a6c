package main

import "github.com/kochabx/apikit/internal/cmd"

func main() {
	cmd.Execute()
}
