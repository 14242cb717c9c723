/*
Package gconf provides a toolset for managing an extension configuration.

Each extension keeps a single configuration object, serialized with its own
Marshal method and stored under the "_c:<package name>" key. Configuration
is seeded from the "conf" section of the genesis document and loaded by
handlers whenever they need it, so that it is part of the committed state.
*/
package gconf
