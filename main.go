// main is the entry point for the gitimpact CLI.
package main

import (
	"github.com/huangsam/gitimpact/cmd"
	"github.com/huangsam/gitimpact/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
