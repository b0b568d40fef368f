// Command jmlgen translates Contract-LIB contract documents into
// JML-annotated Java interfaces.
package main

import (
	"os"

	"github.com/roach88/jmlgen/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
