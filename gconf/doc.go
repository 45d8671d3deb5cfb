/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration of an extension.

Each extension keeps a single configuration entity under the "_c:<pkg>" key.
The configuration can be loaded from the genesis file and updated later by
a message that was authorized by the account itself.
*/
package gconf
