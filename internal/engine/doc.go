// Package engine is the translation entry point.
//
// Translate runs one source document through the pipeline:
//
//  1. parser.Parse reads the Contract-LIB text into commands.
//  2. compiler.Run compiles every declare-abstractions command, then every
//     define-contract command, into a jml.Document.
//  3. jml.Render prints the document.
//
// All mutable state lives in the per-call compiler.Run. The only state
// shared between calls is the immutable symbol table and the run-ID
// generator, so an Engine may be used from many goroutines at once.
// TranslateBatch relies on this to translate independent documents on a
// bounded worker pool; results come back in input order.
//
// The inner (implementation) view is not generated here. It is delegated
// to an InnerViewGenerator supplied with WithInnerView.
package engine
