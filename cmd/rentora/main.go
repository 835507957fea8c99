// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

package main

import (
	"os"

	"github.com/rentora/rentora/cmd/rentora/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
