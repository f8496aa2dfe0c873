// brb - run a command and notify when it completes.
package main

import (
	"os"

	"github.com/schoolboyqueue/brb/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
