// Package pkgstore simulates a registry of installable packages.
//
// A [Store] holds a catalogue and the set of packages installed from it.
// Stores are independent of one another; nothing is shared between them.
// [Register] binds a store to an intent registry so that "import~"
// statements render an install prompt for the named package.
package pkgstore
