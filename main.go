package main

import "github.com/calyptra/stark-wallet/cmd"

func main() {
	cmd.Execute()
}
