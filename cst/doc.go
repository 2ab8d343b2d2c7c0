/*
Package cst implements the concrete-syntax-tree Node type returned by a
parse: a name, ordered children xor a text slice, an optional
insertion-ordered attribute map, and a source offset.

A Node is either a branch (children) or a leaf (text), never both. The
empty result is a shared, immutable sentinel named ":EMPTY"; a recovered
syntax error produces a leaf named "__ZOMBIE" covering the skipped span.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cst
