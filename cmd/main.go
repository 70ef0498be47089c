package main

import (
	"context"
	"os"
)

func main() {
	// slog is configured in slog.go via init()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
