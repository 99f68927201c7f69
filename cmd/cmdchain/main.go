package main

import (
	"github.com/NVIDIA/cmdchain/pkg/cli"
)

func main() {
	cli.Run()
}
