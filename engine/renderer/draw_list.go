package renderer

import (
	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
)

// DrawItem is one visible mesh, ready for a backend.
type DrawItem struct {
	Name     string
	Geometry node.Geometry

	// MVP is projection * view * world * extent, column-major.
	MVP   [16]float32
	Color [4]float32

	CastShadow    bool
	ReceiveShadow bool
}

var white = [4]float32{1, 1, 1, 1}

// collect walks the visible part of the tree under root and returns a draw item per mesh.
// Invisible nodes hide their whole subtree.
func collect(root node.Node, viewProjection [16]float32) []DrawItem {
	var items []DrawItem
	var walk func(n node.Node)
	walk = func(n node.Node) {
		if !n.Visible() {
			return
		}
		if n.IsMesh() {
			items = append(items, drawItem(n, viewProjection))
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return items
}

func drawItem(n node.Node, viewProjection [16]float32) DrawItem {
	g := n.Geometry()
	world := n.WorldMatrix()
	ex, ey, ez := extent(g)

	var scale, model, mvp [16]float32
	common.BuildModelMatrix(scale[:], 0, 0, 0, 0, 0, 0, ex, ey, ez)
	common.Mul4(model[:], world[:], scale[:])
	common.Mul4(mvp[:], viewProjection[:], model[:])

	color := white
	if m := n.Material(); m != nil {
		color = hueRotate(m.BaseColor(), m.HueShift())
	}
	cast, receive := n.Shadows()
	return DrawItem{
		Name:          n.Name(),
		Geometry:      g,
		MVP:           mvp,
		Color:         color,
		CastShadow:    cast,
		ReceiveShadow: receive,
	}
}

// hueRotate rotates the RGB part of c around the gray axis by turns. Gray stays gray and alpha is kept.
func hueRotate(c [4]float32, turns float32) [4]float32 {
	if turns == 0 {
		return c
	}
	sin, cos := math32.Sincos(turns * 2 * math32.Pi)
	k := (1 - cos) / 3
	s := sin * math32.Sqrt(1.0/3)
	a, b, d := cos+k, k-s, k+s

	r, g, bl := c[0], c[1], c[2]
	return [4]float32{
		clamp01(a*r + b*g + d*bl),
		clamp01(d*r + a*g + b*bl),
		clamp01(b*r + d*g + a*bl),
		c[3],
	}
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}

// extent returns the size of the unit proxy box that bounds g.
func extent(g node.Geometry) (x, y, z float32) {
	r := g.Param("radius")
	if outer := g.Param("outerRadius"); outer > r {
		r = outer
	}
	w, h, d := g.Param("width"), g.Param("height"), g.Param("depth")

	switch g.Kind {
	case node.GeometryBox:
		return common.Coalesce(w, 1), common.Coalesce(h, 1), common.Coalesce(d, 1)
	case node.GeometryPlane:
		return common.Coalesce(w, 1), common.Coalesce(h, 1), 1
	case node.GeometrySphere:
		return 2 * r, 2 * r, 2 * r
	case node.GeometryCone, node.GeometryCylinder, node.GeometryLathe:
		return 2 * r, common.Coalesce(h, 2*r), 2 * r
	case node.GeometryRing:
		return 2 * r, 2 * r, 1
	case node.GeometryExtrude:
		return common.Coalesce(w, 1), common.Coalesce(h, 1), common.Coalesce(d, 1)
	}
	return 1, 1, 1
}

// clearColor converts a 0xRRGGBB color to linear RGBA.
func clearColor(hex uint32) [4]float64 {
	return [4]float64{
		float64((hex>>16)&0xFF) / 255,
		float64((hex>>8)&0xFF) / 255,
		float64(hex&0xFF) / 255,
		1,
	}
}
