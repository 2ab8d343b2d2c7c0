/*
Package text implements an immutable document buffer and zero-copy slices
over it.

A Document holds an entire input as a byte sequence, interpreted as UTF-8.
A Slice is a lightweight (document, start, stop) view with inclusive-exclusive
byte-offset semantics; slices support equality and regular-expression search
without ever copying the underlying bytes for the common no-match case.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package text
