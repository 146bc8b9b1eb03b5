package vectorart

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"golang.org/x/net/html/charset"

	"github.com/Carmen-Shannon/oxy-story/engine/material"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
)

var errBadTransform = errors.New("svg: malformed transform")

// drawable lists the SVG elements that become mesh nodes.
var drawable = map[string]bool{
	"path":     true,
	"rect":     true,
	"circle":   true,
	"ellipse":  true,
	"polygon":  true,
	"polyline": true,
}

// ParseSVG reads an SVG sprite sheet. Every element with an id becomes a named shape:
// groups become group nodes and drawable elements become mesh nodes whose material is
// built from the fill color. Nested ids are registered both standalone and inside their parent.
//
// Parameters:
//   - r: the SVG document
//
// Returns:
//   - Library: the shapes
//   - error: error if the document is not well formed
func ParseSVG(r io.Reader) (Library, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.Entity = xml.HTMLEntity
	decoder.CharsetReader = charset.NewReaderLabel

	shapes := make(map[string]node.Node)
	root := node.NewGroup(node.WithName("svg"))
	stack := []node.Node{root}
	// fills inherit down the group stack; "" means no fill set at that level
	fills := []string{""}

	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("svg parsing error: %w", err)
		}

		switch se := t.(type) {
		case xml.StartElement:
			nm := se.Name.Local
			attrs := attrMap(se.Attr)
			fill := attrs["fill"]
			if fill == "" {
				fill = styleFill(attrs["style"])
			}
			if fill == "" {
				fill = fills[len(fills)-1]
			}

			var n node.Node
			switch {
			case nm == "svg":
				stack = append(stack, root)
				fills = append(fills, fill)
				continue
			case nm == "g":
				n = node.NewGroup()
			case drawable[nm]:
				n = node.NewMesh(node.WithMaterial(fillMaterial(attrs["id"], fill)))
			default:
				if err := decoder.Skip(); err != nil {
					return nil, fmt.Errorf("svg parsing error: %w", err)
				}
				continue
			}

			n.SetName(attrs["id"])
			if err := applyTransform(n, attrs["transform"]); err != nil {
				return nil, fmt.Errorf("%s %q: %w", nm, attrs["id"], err)
			}
			stack[len(stack)-1].AddChild(n)
			if id := attrs["id"]; id != "" {
				shapes[id] = n
			}
			stack = append(stack, n)
			fills = append(fills, fill)

		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
				fills = fills[:len(fills)-1]
			}
		}
	}

	return NewLibrary(shapes), nil
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name.Local] = strings.TrimSpace(a.Value)
	}
	return m
}

// styleFill extracts the fill property from an inline style attribute.
func styleFill(style string) string {
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(k) == "fill" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// fillMaterial builds the material for a drawable from its fill color. Unparseable and
// missing fills fall back to black, as SVG renderers do.
func fillMaterial(name, fill string) material.Material {
	hex, ok := ParseColor(fill)
	if !ok {
		hex = 0x000000
	}
	return material.NewMaterial(material.WithName(name), material.WithHexColor(hex))
}

// ParseColor parses #rgb and #rrggbb colors.
//
// Parameters:
//   - s: the color string
//
// Returns:
//   - uint32: the packed 0xRRGGBB color
//   - bool: false if s is not a hex color
func ParseColor(s string) (uint32, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// applyTransform maps translate, scale and rotate functions onto the node transform.
// SVG rotations are in degrees around the view axis.
func applyTransform(n node.Node, transform string) error {
	rest := strings.TrimSpace(transform)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		closing := strings.IndexByte(rest, ')')
		if open < 0 || closing < open {
			return errBadTransform
		}
		fn := strings.TrimSpace(rest[:open])
		args, err := parseNumbers(rest[open+1 : closing])
		if err != nil {
			return err
		}
		rest = strings.TrimLeft(rest[closing+1:], " ,")

		switch fn {
		case "translate":
			p := n.Position()
			switch len(args) {
			case 1:
				n.SetPosition(p[0]+args[0], p[1], p[2])
			case 2:
				n.SetPosition(p[0]+args[0], p[1]+args[1], p[2])
			default:
				return errBadTransform
			}
		case "scale":
			s := n.Scale()
			switch len(args) {
			case 1:
				n.SetScale(s[0]*args[0], s[1]*args[0], s[2])
			case 2:
				n.SetScale(s[0]*args[0], s[1]*args[1], s[2])
			default:
				return errBadTransform
			}
		case "rotate":
			if len(args) == 0 {
				return errBadTransform
			}
			r := n.Rotation()
			n.SetRotation(r[0], r[1], r[2]+args[0]*math32.Pi/180)
		default:
			// matrix and skew are not used by the sprite sheets
		}
	}
	return nil
}

func parseNumbers(s string) ([]float32, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' })
	out := make([]float32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errBadTransform, err)
		}
		out = append(out, float32(v))
	}
	return out, nil
}
