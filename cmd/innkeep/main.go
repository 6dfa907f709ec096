// Command innkeep is the hotel front desk CLI.
package main

import (
	"os"

	"github.com/roach88/innkeep/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
