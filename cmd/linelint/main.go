package main

import (
	"os"

	"github.com/gnolang/linelint/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
