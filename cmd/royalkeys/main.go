package main

import "github.com/royalkeys/royalkeys/cmd/royalkeys/cmd"

func main() {
	cmd.Execute()
}
