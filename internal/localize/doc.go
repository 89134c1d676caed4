// Package localize renders cart labels from message tables.
//
// Messages are looked up by language, component, and id. Patterns use
// {name} placeholders filled from Params and may select text with
// {name, plural, =0 {...} other {#}}. Each table is compiled into a
// golang.org/x/text/message catalog; numbers are grouped for the language
// and plural cases are chosen with golang.org/x/text/feature/plural. A
// missing id renders as the id itself and logs a warning, so a gap in a
// table never hides a label.
package localize
