// Package transform holds the pure text passes applied to documentation
// before and after conversion. Nothing in this package touches the
// filesystem.
package transform
