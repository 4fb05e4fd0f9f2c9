package main

import "github.com/codecontexthq/contextgraph/cmd"

func main() {
	cmd.Execute()
}
