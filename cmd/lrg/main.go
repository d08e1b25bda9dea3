package main

import (
	"github.com/hisahi/lrg/cmd/lrg/cmd"
)

func main() {
	cmd.Execute()
}
