/*
Package x contains the helpers shared by the multiclique extensions.

Every extension lives in its own sub-package and exposes handlers, an
initializer and the functions other extensions may call. Handlers are given
an Authenticator when registered, so the source of the conditions that
authorize a message can be replaced in tests.
*/
package x
