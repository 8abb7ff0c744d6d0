// Command expanse-cli runs the Expanse tools from a terminal.
package main

import "github.com/dixieflatline76/Expanse/cmd/expanse-cli/cmd"

func main() {
	cmd.Execute()
}
