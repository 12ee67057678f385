// Package git checks out project repositories at the branch of a
// documentation version so their sources can be built.
package git
