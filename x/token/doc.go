/*
Package token implements the ledger that offers settle against.

A Mint defines a fungible asset, an Account holds a balance of exactly one
mint for one owner, and every address may hold a lamport balance that pays
for the storage it occupies. Creating a record moves its reservation from
the payer to the record address, closing a record sweeps it to a recipient.

The Controller is the only way other extensions touch this state. Transfers
and closures require the owner of the debited account to be authorized by
the Authenticator the controller was built with.
*/
package token
