package main

import "github.com/notargets/triview/cmd"

func main() {
	cmd.Execute()
}
