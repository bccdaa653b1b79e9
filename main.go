package main

import "github.com/deploymenttheory/go-t2decrypt/cmd"

func main() {
	cmd.Execute()
}
