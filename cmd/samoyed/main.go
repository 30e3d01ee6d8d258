package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/grovetools/samoyed/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cmd.Execute(ctx, cmd.DefaultDeps(), os.Args[1:])
	stop()
	os.Exit(code)
}
