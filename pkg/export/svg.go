package export

import (
	"bytes"
	"fmt"

	"github.com/deckwerk/deckplan/pkg/geom"
	"github.com/deckwerk/deckplan/pkg/routing"
)

// SVG styling constants. Colors for the static layers; circuit colors
// come from the routing palette.
const (
	svgPadding      = 80.0
	roomStroke      = "#1f2933"
	roomFill        = "#f5f7fa"
	profileStroke   = "#9aa5b1"
	plateStroke     = "#cbd2d9"
	circuitWidth    = 8.0
	profileOpacity  = "0.85"
	circuitLinecap  = "round"
	circuitLinejoin = "round"
)

// RenderSVG draws the plan to scale: the room outline, the profile grid,
// the heating plates, and each circuit path in its palette color.
// Coordinates are drawing units with Y increasing downward, which matches
// the SVG coordinate system directly.
func RenderSVG(p *Plan) ([]byte, error) {
	min, max, ok := p.Room.Polygon.BoundingBox()
	if !ok {
		return nil, fmt.Errorf("room polygon has no extent")
	}

	w := max.X - min.X + 2*svgPadding
	h := max.Y - min.Y + 2*svgPadding

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f">`+"\n",
		min.X-svgPadding, min.Y-svgPadding, w, h)

	writeRoom(&buf, p)
	writeProfiles(&buf, p)
	writePlates(&buf, p)
	writeCircuits(&buf, p)

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func writeRoom(buf *bytes.Buffer, p *Plan) {
	buf.WriteString(`  <polygon points="`)
	for i, v := range p.Room.Polygon.Vertices {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%.2f,%.2f", v.X, v.Y)
	}
	fmt.Fprintf(buf, `" fill="%s" stroke="%s" stroke-width="4"/>`+"\n", roomFill, roomStroke)
}

func writeProfiles(buf *bytes.Buffer, p *Plan) {
	buf.WriteString(`  <g id="profiles">` + "\n")
	for _, pr := range p.Profiles {
		fmt.Fprintf(buf,
			`    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" opacity="%s"/>`+"\n",
			pr.Start.X, pr.Start.Y, pr.End.X, pr.End.Y, profileStroke, pr.Width, profileOpacity)
	}
	buf.WriteString("  </g>\n")
}

func writePlates(buf *bytes.Buffer, p *Plan) {
	buf.WriteString(`  <g id="plates">` + "\n")
	for _, pl := range p.Plates {
		fmt.Fprintf(buf,
			`    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
			pl.Start.X, pl.Start.Y, pl.End.X, pl.End.Y, plateStroke, pl.Width)
	}
	buf.WriteString("  </g>\n")
}

func writeCircuits(buf *bytes.Buffer, p *Plan) {
	buf.WriteString(`  <g id="circuits" fill="none">` + "\n")
	for i, c := range p.Circuits {
		fmt.Fprintf(buf,
			`    <path id="circuit-%d" d="%s" stroke="%s" stroke-width="%.2f" stroke-linecap="%s" stroke-linejoin="%s"/>`+"\n",
			i, pathData(c.Path), c.Color, circuitWidth, circuitLinecap, circuitLinejoin)
	}
	buf.WriteString("  </g>\n")
}

// pathData converts a routed path to SVG path commands. Arcs map to the
// elliptical arc command with equal radii; the sweep flag follows the
// element's rotation sense (1 is clockwise in Y-down coordinates).
func pathData(path routing.Path) string {
	var b bytes.Buffer
	for i, el := range path {
		if i == 0 {
			fmt.Fprintf(&b, "M %.2f %.2f", el.Start.X, el.Start.Y)
		} else if !samePoint(path[i-1].End, el.Start) {
			fmt.Fprintf(&b, " M %.2f %.2f", el.Start.X, el.Start.Y)
		}

		switch el.Kind {
		case routing.KindArc:
			sweep := 0
			if el.Clockwise {
				sweep = 1
			}
			fmt.Fprintf(&b, " A %.2f %.2f 0 0 %d %.2f %.2f",
				el.Radius, el.Radius, sweep, el.End.X, el.End.Y)
		default:
			fmt.Fprintf(&b, " L %.2f %.2f", el.End.X, el.End.Y)
		}
	}
	return b.String()
}

func samePoint(a, b geom.Point) bool {
	const eps = 1e-6
	return a.Distance(b) < eps
}
