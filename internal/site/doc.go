// Package site produces the data the web layer renders alongside the built
// documentation: controller results with named data slots and data files
// written by DataBuilders.
package site
