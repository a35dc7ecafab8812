// Command dugraph graphs directory disk usage over time using file timestamps.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/idelchi/dugraph/internal/cli"
)

// version is set at build time.
//
//nolint:gochecknoglobals // Set by ldflags
var version = "unknown"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.New(version).Command().ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
