package main

import (
	"os"

	"github.com/ducthang1752k4-ctrl/lingua/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
