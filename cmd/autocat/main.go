// Package main provides the entry point for the autocat CLI application.
package main

import (
	"os"

	"shekelio/autocat/cmd/batch"
	"shekelio/autocat/cmd/categories"
	"shekelio/autocat/cmd/categorize"
	"shekelio/autocat/cmd/learn"
	"shekelio/autocat/cmd/root"
)

func main() {
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(learn.Cmd)
	root.Cmd.AddCommand(categories.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
