package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/filmyfim/filmyfim/internal/constants"
)

func main() {
	root := newRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(constants.AppVersion),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
