// ideastream runs idea analyses against a remote analysis service and turns
// its NDJSON stream into a typed result.
//
// Usage:
//
//	ideastream analyze "a mobile coffee cart for office parks" [--file plan.pdf]
//	ideastream normalize capture.ndjson
//	ideastream normalize --aggregate result.json
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
