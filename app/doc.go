/*
Package app assembles the swap ledger.

It provides the transaction envelope and its decoder, the router that
dispatches decoded messages by path, the decorator chain wrapped around
it, and App, which owns the committed store and the check and deliver
caches between two commits.

NewSwapApp wires everything together:

	db, err := iavl.NewCommitStore(dir, "swapd")
	...
	node, err := app.NewSwapApp(db, logger, prometheus.DefaultRegisterer)
	...
	err = node.InitChain(genesis, app.Initializer())
*/
package app
