package main

import (
	"NoLabelPanel/cmd"
)

func main() {
	cmd.Execute()
}
