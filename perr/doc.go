/*
Package perr implements the Error record used throughout a parse run: a
code, a message, a source position with derived line/column, an optional
match length and a list of related errors.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package perr
