// Package verify checks that every reference in a store resolves to a
// record of an acceptable type.
//
// The acceptable types of each field come from the reference tables in
// package model. Opaque records declare no fields and are not checked.
// Verification never modifies the store.
package verify
