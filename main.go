package main

import "github.com/hfsreader/hfsreader/cmd"

func main() {
	cmd.Execute()
}
