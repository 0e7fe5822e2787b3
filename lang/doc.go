// Package lang implements the PlexCode tokenizer and parser.
//
// PlexCode is a line-oriented command language. Each line holds one
// statement: a command keyword followed by parameters. Nesting is written
// with explicit descend markers rather than indentation:
//
//	Panel~!!
//	╰──➤ ID~ "TestPanel"
//	╰──➤ Feed~ LIVE
//
// Here ID~ and Feed~ are both children of Panel~!!. A line with two markers
// nests under the nearest preceding line with one.
//
// # Grammar
//
// Informal EBNF:
//
//	File      → Line* EOF
//	Line      → TreeDown* (Statement | Shell)? NEWLINE
//	Statement → Command (Param | Pipe)* Bridge?
//	Shell     → ('~!!' | '//' | '///') <rest of line>
//	Bridge    → ('~!!' | '//' | '///') <rest of line>
//	Param     → List | Reference | Key ':' Value | Literal
//	List      → '[' (Item (',' Item)*)? ']'
//	Item      → Reference | Literal
//	Reference → '@' (Dot | Identifier | Keyword)*
//	Literal   → String | Number | Identifier | Keyword
//
// Command keywords are case-sensitive: Store~ and store~ are distinct
// tokens. Word keywords (ALL, LIVE, sensors, ...) may only appear as
// parameter values.
//
// # Permissive parsing
//
// Tokens that cannot start a statement or a parameter are skipped without
// error, so stray text degrades to fewer statements. The error vocabulary
// ([NewUnknownCommandError] and friends) is raised by later passes, such as
// intent validation, rather than during tree construction.
package lang
