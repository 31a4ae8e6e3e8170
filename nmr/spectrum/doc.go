// Package spectrum defines the sample buffers that processing filters read
// and write.
//
// A [Snapshot] bundles the acquisition [Info] with either one-dimensional
// buffers ([Data1D]: parallel x, real and imaginary arrays) or
// two-dimensional buffers ([Data2D]: real and optional imaginary matrices).
// Snapshots are plain values; [Snapshot.Clone] produces an independent deep
// copy and [Snapshot.Equal] compares bit for bit.
package spectrum
