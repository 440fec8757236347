// Package gearmesh keeps two meshing gears, or a gear and a rack,
// kinematically synchronized.
//
// Given the descriptors of a master and a slave gear, the master's world
// placement and the connector drive angles, Solve returns the placement
// the slave's anchor must take so teeth stay engaged as either gear is
// turned. Four meshing pairs are supported:
//
//	master             slave              case
//	ExternalInvolute   ExternalInvolute   CaseExternal
//	InternalInvolute   ExternalInvolute   CaseInternal
//	ExternalInvolute   InvoluteRack       CaseRack
//	CycloidGear        CycloidRack        CaseRack
//	CycloidGear        CycloidGear        CaseCycloid
//
// Angles are in degrees and lengths in the host's length unit, the way a
// CAD host stores them. The solver holds no state; descriptors are rebuilt
// from the host objects on every call.
package gearmesh
