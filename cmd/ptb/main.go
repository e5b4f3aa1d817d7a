package main

import "github.com/ProtoTraceLab/ProtoBoard/cmd/ptb/cmd"

func main() {
	cmd.Execute()
}
