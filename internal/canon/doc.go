// Package canon produces the stable, diff-friendly serialization used for
// expected/actual values in test results.
//
// Values are first normalized into the plain JSON value space (nil, bool,
// json.Number, string, []any, map[string]any) and then written as compact
// JSON with object keys sorted recursively. Array element order is kept.
//
// Key differences from standard json.Marshal:
//  1. Object keys sorted by UTF-16 code units (the order JavaScript's
//     default sort uses), not UTF-8 bytes
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized
//  4. U+2028 and U+2029 are written literally
//
// Key order is a serialization detail only; it never changes equality.
// Serializing a decoded canonical document again yields identical bytes.
package canon
