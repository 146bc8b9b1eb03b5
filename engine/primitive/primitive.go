// Package primitive builds the procedural decorations placed in the story chapters.
// Every constructor returns a fresh group whose meshes carry their own geometry and material.
package primitive

import (
	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/engine/material"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
)

// Palette colors shared by the decorations.
const (
	ColorPurple       uint32 = 0xA481D1
	ColorLightPurple  uint32 = 0x8C6BCC
	ColorAdditional   uint32 = 0x722ED1
	ColorDarkPurple   uint32 = 0x3B2A62
	ColorShadowPurple uint32 = 0x5F458C
	ColorBrightBlue   uint32 = 0x3D6DFF
	ColorLightBlue    uint32 = 0x9FBAFF
	ColorSkyLightBlue uint32 = 0xA1C6FF
	ColorMountainBlue uint32 = 0x6E84B5
	ColorWhite        uint32 = 0xFFFFFF
	ColorSnowColor    uint32 = 0xD4E8FF
	ColorOrange       uint32 = 0xE86A2C
	ColorGrey         uint32 = 0x948DA3
	ColorMetalGrey    uint32 = 0x3C3E46
)

func mat(name string, hex uint32, roughness float32) material.Material {
	return material.NewMaterial(
		material.WithName(name),
		material.WithHexColor(hex),
		material.WithRoughness(roughness),
	)
}

func mesh(name string, kind node.GeometryKind, params map[string]float32, m material.Material, options ...node.NodeBuilderOption) node.Node {
	opts := append([]node.NodeBuilderOption{
		node.WithName(name),
		node.WithGeometry(kind, params),
		node.WithMaterial(m),
	}, options...)
	return node.NewMesh(opts...)
}

// Carpet builds the striped floor arc of chapters one and four.
//
// Parameters:
//   - dark: use the night palette
//
// Returns:
//   - node.Node: the carpet group
func Carpet(dark bool) node.Node {
	base, stripe := ColorLightPurple, ColorAdditional
	if dark {
		base, stripe = ColorShadowPurple, ColorDarkPurple
	}

	const stripes = 7
	const startDeg, endDeg = float32(16), float32(74)
	g := node.NewGroup(node.WithName("carpet"))
	g.AddChild(mesh("carpet-base", node.GeometryLathe, map[string]float32{
		"innerRadius": 763, "outerRadius": 943, "height": 3, "startDeg": startDeg, "endDeg": endDeg,
	}, mat("carpet-base", base, 0.9)))

	step := (endDeg - startDeg) / stripes
	for i := 1; i < stripes; i += 2 {
		from := startDeg + float32(i)*step
		g.AddChild(mesh("carpet-stripe", node.GeometryLathe, map[string]float32{
			"innerRadius": 763, "outerRadius": 943, "height": 4, "startDeg": from, "endDeg": from + step,
		}, mat("carpet-stripe", stripe, 0.9)))
	}
	return g
}

// Road builds the dashed road arc of chapter three.
func Road() node.Node {
	const dashes = 12
	const startDeg, endDeg = float32(0), float32(90)
	g := node.NewGroup(node.WithName("road"))
	g.AddChild(mesh("road-base", node.GeometryLathe, map[string]float32{
		"innerRadius": 732, "outerRadius": 892, "height": 3, "startDeg": startDeg, "endDeg": endDeg,
	}, mat("road-base", ColorGrey, 0.95)))

	step := (endDeg - startDeg) / (2 * dashes)
	for i := 0; i < dashes; i++ {
		from := startDeg + float32(2*i)*step + step/2
		g.AddChild(mesh("road-dash", node.GeometryLathe, map[string]float32{
			"innerRadius": 806, "outerRadius": 818, "height": 4, "startDeg": from, "endDeg": from + step,
		}, mat("road-dash", ColorWhite, 0.95)))
	}
	return g
}

// Saturn builds the hanging planet with its ring, rope and weight.
//
// Parameters:
//   - dark: use the night palette
//
// Returns:
//   - node.Node: the saturn group
func Saturn(dark bool) node.Node {
	planet, ring := ColorDarkPurple, ColorBrightBlue
	if dark {
		planet, ring = ColorShadowPurple, ColorLightPurple
	}

	g := node.NewGroup(node.WithName("saturn"))
	g.AddChild(
		mesh("saturn-planet", node.GeometrySphere, map[string]float32{"radius": 60, "segments": 32}, mat("saturn-planet", planet, 0.6)),
		mesh("saturn-ring", node.GeometryLathe, map[string]float32{
			"innerRadius": 80, "outerRadius": 120, "height": 2, "startDeg": 0, "endDeg": 360,
		}, mat("saturn-ring", ring, 0.6), node.WithRotation(common.DegToRad(20), 0, common.DegToRad(18))),
		mesh("saturn-rope", node.GeometryCylinder, map[string]float32{"radius": 1, "height": 1000, "segments": 8},
			mat("saturn-rope", ColorMetalGrey, 0.5), node.WithPosition(0, 500, 0)),
		mesh("saturn-weight", node.GeometrySphere, map[string]float32{"radius": 10, "segments": 16},
			mat("saturn-weight", ring, 0.6), node.WithPosition(0, 120, 0)),
	)
	return g
}

// Pyramid builds the four sided pyramid of chapter two.
func Pyramid() node.Node {
	// a four segment cone with radius h/sqrt(2) gives a square base of side h
	const height = float32(280)
	g := node.NewGroup(node.WithName("pyramid"))
	g.AddChild(mesh("pyramid-body", node.GeometryCone, map[string]float32{
		"radius": height / math32.Sqrt2, "height": height, "radialSegments": 4,
	}, mat("pyramid-body", ColorBrightBlue, 0.7), node.WithRotation(0, common.DegToRad(45), 0)))
	return g
}

// Lantern builds the street lantern of chapter two: a base, a pole and a glass lamp with a cap.
func Lantern() node.Node {
	blue := mat("lantern-metal", ColorBrightBlue, 0.4)
	glass := mat("lantern-glass", ColorLightBlue, 0.1)

	g := node.NewGroup(node.WithName("lantern"))
	g.AddChild(
		mesh("lantern-base", node.GeometryCylinder, map[string]float32{"radius": 16, "height": 120, "segments": 16}, blue,
			node.WithPosition(0, 60, 0)),
		mesh("lantern-pole", node.GeometryCylinder, map[string]float32{"radius": 7, "height": 230, "segments": 16}, blue,
			node.WithPosition(0, 235, 0)),
		mesh("lantern-plinth", node.GeometryBox, map[string]float32{"width": 37, "height": 4, "depth": 37}, blue,
			node.WithPosition(0, 352, 0)),
		mesh("lantern-glass", node.GeometryCone, map[string]float32{"radius": 34, "height": 60, "radialSegments": 4, "open": 1}, glass,
			node.WithPosition(0, 384, 0), node.WithRotation(common.DegToRad(180), common.DegToRad(45), 0)),
		mesh("lantern-cap", node.GeometryCone, map[string]float32{"radius": 31, "height": 6, "radialSegments": 4}, blue,
			node.WithPosition(0, 417, 0), node.WithRotation(0, common.DegToRad(45), 0)),
	)
	return g
}

// Snowman builds the snowman of chapter three: a base sphere and a top group holding the head and carrot nose.
func Snowman() node.Node {
	snow := mat("snowman-snow", ColorSnowColor, 0.8)

	top := node.NewGroup(node.WithName("snowman-top"))
	top.AddChild(
		mesh("snowman-head", node.GeometrySphere, map[string]float32{"radius": 44, "segments": 20}, snow,
			node.WithPosition(0, 105, 0)),
		mesh("snowman-nose", node.GeometryCone, map[string]float32{"radius": 18, "height": 75, "radialSegments": 20},
			mat("snowman-nose", ColorOrange, 0.5),
			node.WithPosition(0, 105, 43), node.WithRotation(common.DegToRad(90), 0, 0)),
	)

	g := node.NewGroup(node.WithName("snowman"))
	g.AddChild(
		mesh("snowman-base", node.GeometrySphere, map[string]float32{"radius": 75, "segments": 20}, snow),
		top,
	)
	return g
}

// Fence builds the arc of fence posts of chapter three.
func Fence() node.Node {
	const posts = 12
	const radius = float32(800)
	const startDeg, endDeg = float32(0), float32(90)

	post := mat("fence-post", ColorMountainBlue, 0.7)
	g := node.NewGroup(node.WithName("fencing"))
	step := (endDeg - startDeg) / (posts - 1)
	for i := 0; i < posts; i++ {
		a := common.DegToRad(startDeg + float32(i)*step)
		g.AddChild(mesh("fence-post", node.GeometryCylinder, map[string]float32{"radius": 6, "height": 140, "segments": 8}, post,
			node.WithPosition(radius*math32.Cos(a), 0, radius*math32.Sin(a))))
	}
	return g
}
