// Package search maintains the inverted index over song titles and
// artists and answers substring queries against it. The index is rebuilt
// wholesale after every library mutation rather than patched
// incrementally, which keeps it trivially consistent with the library at
// the cost of rebuild work proportional to the collection size.
package search
