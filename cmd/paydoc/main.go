package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/kolah/paydoc/internal/cli"
	"github.com/kolah/paydoc/internal/specerr"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.RootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		errs := specerr.Flatten(err)
		if len(errs) > 1 {
			fmt.Fprintf(os.Stderr, "%d errors:\n", len(errs))
		}
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, "error: "+e.Error())
		}
		stop()
		os.Exit(1)
	}
}
