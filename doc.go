/*
Package peggo is a PEG (Parsing Expression Grammar) parser-combinator
runtime, with packrat memoization, left-recursion support, mandatory-
continuation syntax-error catching with skip/resume reentry, and early
concrete-syntax-tree reduction. Package structure is as follows:

■ text: Package text implements the immutable input Document and the
zero-copy Slice view used to address it.

■ rset: Package rset implements RuneSet, a sorted non-overlapping
rune-range collection used by CharRange parsers.

■ cst: Package cst implements the concrete/abstract syntax tree Node
produced by a parse.

■ perr: Package perr implements the Error record used for syntax
diagnostics.

■ parse: Package parse implements the parser algebra (Text, IgnoreCase,
CharRange, RegExp, Whitespace, Repeat, Alternative, Series, Interleave,
Lookahead, Synonym, Forward, Capture/Retrieve/Pop), the grammar Context,
the memoization and left-recursion driver, and the error-catching/reentry
protocol.

The base package holds only this overview; it declares no types of its
own.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package peggo
