package main

import (
	"github.com/jjtimmons/orfanno/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
