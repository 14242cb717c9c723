/*
Package client lets integrators drive the swap ledger.

Offers are addressed by their maker and a maker chosen id. Given those and
the two mints, every other account a create or fulfill instruction needs is
derived, so callers never pass vaults or token accounts by hand:

	c := client.NewClient(node)
	offer, err := c.MakeOffer(ctx, makerKey, mintA, mintB, 1, 100, 50)
	...
	err = c.TakeOffer(ctx, takerKey, makerKey.PublicKey(), mintA, mintB, 1)

Inspect and FindOffers are read only.
*/
package client
