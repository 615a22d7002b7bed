// ABOUTME: Main marksweep package providing version information and package documentation
// ABOUTME: This is the root package for the concurrent mark-and-sweep collector

// Package marksweep provides a concurrent, stop-the-world, mark-and-sweep
// garbage collector for a managed heap of objects and arrays. It includes
// a safepoint rendezvous barrier, a worker pool for parallel marking and
// sweeping, and a policy registry for collection algorithms.
package marksweep

// Version is the semantic version of the marksweep library
const Version = "0.1.0-dev"
