// Package model holds the entity store and the record catalog of a STEP
// building model.
//
// # Store
//
// Store is an identifier-ordered, heterogeneous container. Records are
// addressed only by identifier; typed retrieval (Get, Update, FindAll) is
// checked at run time and returns a *LookupError instead of panicking.
// Cross-references are not checked on insert, so graphs can be built with
// forward references. The verify package checks them afterwards.
//
// Store is not safe for concurrent use. Every mutation goes through the
// *Store it is called on.
//
// # Records
//
// Record is a sealed interface. The catalog is closed: each modeled record
// type has a Kind tag, a parse function registered in the dispatch table,
// a WriteStep method and a reference table listing, per reference field,
// the record types it may point at. Records of any other keyword are kept
// as *Opaque, which preserves their source text verbatim.
//
//	#6= IFCCARTESIANPOINT((0.,0.,0.));   -> *Point3D
//	#7= IFCAXIS2PLACEMENT3D(#6,$,$);     -> *Axis3D, Location -> Point3D
//	#8= IFCOWNERHISTORY(#3,#4,$,...);    -> *Opaque
package model
