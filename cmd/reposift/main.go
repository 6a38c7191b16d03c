// Command reposift finds embedded systems repositories on GitHub.
package main

import (
	"context"
	"os"

	"github.com/custodia-labs/reposift/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Execute(context.Background(), version); err != nil {
		os.Exit(1)
	}
}
