package node

// GeometryKind names a procedural geometry generator.
type GeometryKind string

const (
	GeometryNone     GeometryKind = ""
	GeometryBox      GeometryKind = "box"
	GeometrySphere   GeometryKind = "sphere"
	GeometryCone     GeometryKind = "cone"
	GeometryCylinder GeometryKind = "cylinder"
	GeometryLathe    GeometryKind = "lathe"
	GeometryRing     GeometryKind = "ring"
	GeometryPlane    GeometryKind = "plane"
	GeometryExtrude  GeometryKind = "extrude"
)

// Geometry describes procedural mesh geometry by generator kind and its parameters.
// Params are generator specific, e.g. radius and segment counts for a sphere.
type Geometry struct {
	Kind   GeometryKind
	Params map[string]float32
}

// Param returns the named parameter, or 0 if unset.
func (g Geometry) Param(name string) float32 {
	return g.Params[name]
}
