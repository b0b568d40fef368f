// Package jml is the target entity model for generated JML skeletons and
// its text renderer.
//
// A Document maps class names to Entities. Each Entity carries ghost
// fields and method declarations; each Method carries zero or more
// normal_behavior contract blocks (one requires and one ensures clause).
//
// Documents are built and mutated by a single compiler run and consumed by
// Render at the end of that run. Nothing here is safe for concurrent
// mutation, and nothing needs to be: one run, one goroutine.
package jml
