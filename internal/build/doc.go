// Package build runs one tagpages pass: load the source tree, run the
// configured plugins in order and write the result.
//
// All entry points (build, tags and watch commands, tests) go through
// BuildService so that metrics, logging and error classification stay
// identical between them.
package build
