// Package streams provides plumbing helpers for composing io readers and
// writers: merging several sources into one, piping and teeing data between
// endpoints, comparing stream contents, and reading or writing fixed-width
// binary primitives with an explicit byte order.
//
// The helpers stay on the io.Reader/io.Writer boundary so they compose with
// any stream in the module, including replay readers and spooled streams.
// Synchronous variants block the caller; the Async and Available variants
// spawn their goroutines internally and report completion through the
// returned reader or the onExit callback.
package streams
