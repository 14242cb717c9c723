/*
Package offer implements a trust-minimized two-party token swap.

A maker escrows an amount of mint A and names the amount of mint B it
wants in return. The escrowed tokens sit in a vault owned by the offer
address, which is derived from the program id, the maker and a maker
chosen id. No private key exists for a derived address: only this
package, by reproducing the derivation, can authorize moving tokens out
of the vault.

Any taker may fulfill an open offer by paying the wanted amount of B to
the maker. In the same transaction the taker receives the vault content,
the vault is closed and the offer record is deleted. Either every step
succeeds or none takes effect.
*/
package offer
