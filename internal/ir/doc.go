// Package ir provides the foundational value types for STEP exchange files.
//
// This package contains identifiers, typed references, the omitted/derived
// optional protocol and the scalar attribute types. All other internal
// packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Identifiers are surrogate keys only; they carry no meaning beyond addressing
//   - Ref[T] is a phantom-typed identifier, the type tag has no runtime state
//   - Optional[T] keeps omitted ($) and derived (*) distinct, never collapsed
//   - Nothing here owns a record; ownership belongs to the entity store
package ir
