/*
Package x contains the standard extensions

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together by the app package to construct
the swap ledger.

Authentication is pluggable: handlers receive an Authenticator in
their constructor and never inspect the context themselves. A
signature checker and the offer program authority are the two
implementations in use.
*/
package x
