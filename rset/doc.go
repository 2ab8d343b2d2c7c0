/*
Package rset implements RuneSet, a sorted, non-overlapping collection of
rune ranges with set algebra (union, intersect, subtract, negate) and a
cached membership test.

Unlike a destructive scratch-space set meant for a single algorithm run,
RuneSet values are immutable grammar-construction-time objects that may be
shared across many parsers; every algebra operation therefore returns a
new set rather than mutating its receiver.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package rset
