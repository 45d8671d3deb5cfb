/*
Package app wires the extensions into a transaction processing stack.

It contains the message router, the decorator chain, the transaction
envelope carrying an authorization request and the Application that keeps
the committed state together with the check and deliver caches.
*/
package app
