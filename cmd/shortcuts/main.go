// Shortcuts keeps named global keyboard shortcuts, records new ones with
// conflict checks, and runs their actions from the system tray.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"shortcut-recorder/internal/cli"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Tagline is used in help text.
const Tagline = "Record and run global keyboard shortcuts"

func main() {
	var c cli.CLI
	ctx := kong.Parse(&c,
		kong.Name("shortcuts"),
		kong.Description(Tagline),
		kong.UsageOnError(),
		kong.Vars{"version": "shortcuts " + Version},
	)

	if err := ctx.Run(&c); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
