/*
Package swapper defines interfaces used throughout the app, such as: storage,
transactions, handlers and the keyless authorities that guard escrowed funds.
It also contains helpers to work with context and derived addresses.

Extensions live under x/. The escrow itself is implemented by x/offer on top
of the token ledger in x/token. Every transaction runs inside a cache-wrapped
store and is written back only if all of its steps succeed.
*/
package swapper
