// Package diff renders the difference between an expected and an actual
// serialized value.
//
// Three renderers exist, selected by the result's format mode:
//
//   - str: a positional character diff. Both strings are walked rune by
//     rune up to the shorter length; equal runes stay plain, unequal runes
//     are highlighted. The remainder of the longer string is emitted as
//     added (actual longer) or removed (expected longer). It does not align
//     insertions or deletions. The Myers algorithm can be selected instead.
//   - obj: a key-level structural diff over parsed JSON. Only the keys of
//     the actual value are visited; keys present only in expected do not
//     appear in the output.
//   - none: the actual value as plain highlighted text.
//
// All output goes through a style.Styler, so the same renderer produces
// ANSI-colored text for terminals and tagged text for tests.
package diff
