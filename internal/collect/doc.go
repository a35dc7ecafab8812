// Package collect gathers file timestamp entries from directory trees.
//
// It walks directories using fastwalk for parallel traversal, filters files by
// depth, exclusion pattern, extension and size, and resolves each file's
// creation time from the platform where one is recorded.
package collect
