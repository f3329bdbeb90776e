// Package equal implements structural equality over values classified by
// package kind. Objects (maps and structs) are equal when they have the same
// key set and equal values under every key; arrays (slices and arrays) when
// they have the same length and equal elements at every index. Cyclic values
// are not supported.
package equal
