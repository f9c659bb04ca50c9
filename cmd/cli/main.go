package main

import (
	"github.com/mchmarny/ncapsim/pkg/cli"
)

func main() {
	cli.Execute()
}
