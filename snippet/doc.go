/*
The snippet package converts editor snippets written in a human-editable
TOML dialect into the strict JSON form that the editor's snippet loader
requires. The TOML dialect extends the JSON attributes with a small set of
convenience attributes: a body can be taken from an external source file,
cropped to a range of lines and stripped of leading or trailing blank
lines. These attributes are resolved during conversion and never appear in
the output; every other attribute passes through unchanged, in the order
it was declared.
*/
package snippet
