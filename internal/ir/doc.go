// Package ir provides the logic intermediate representation for jmlgen.
//
// The IR is the data model produced by the parser from Contract-LIB source
// text: terms, sorts, abstractions and commands. It is immutable once
// built and consumed read-only by the compiler.
//
// This package contains type definitions and canonical serialization only.
// All other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Term and Command are closed sum types (sealed by an unexported marker
//     method), so a new variant is a compile-time change at every switch
//   - Ordered slices everywhere: field, formal and contract order is
//     observable in generated output
//   - Canonical JSON (RFC 8785) is the only serialization used for hashing
package ir
