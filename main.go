package main

import "github.com/notargets/gridmend/cmd"

func main() {
	cmd.Execute()
}
