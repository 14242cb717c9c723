/*
swapd runs a single node swap ledger stored under a home directory.

Every command opens the ledger, executes and commits, then closes it
again, so commands can be chained from a shell:

  $ swapd keys new maker
  $ swapd init genesis.json
  $ swapd make-offer --key maker --mint-a <A> --mint-b <B> --offered 100 --wanted 50
  $ swapd offers --mint-b <B>
  $ swapd take-offer --key taker --maker maker --mint-a <A> --mint-b <B> --id <id>

Flags can also be set in <home>/swapd.toml or through SWAPD_ prefixed
environment variables, for example SWAPD_LOG_LEVEL=debug.
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
