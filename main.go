package main

import "github.com/alexiusacademia/holeframe/cmd"

func main() {
	cmd.Execute()
}
