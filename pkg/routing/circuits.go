package routing

import (
	"sort"

	"github.com/deckwerk/deckplan/pkg/errors"
	"github.com/deckwerk/deckplan/pkg/plan"
)

// RegisterSize is the fixed plate count per register assembly. The nested
// turn pattern is defined for exactly this many plates; a trailing group
// with fewer plates cannot be connected and is dropped.
const RegisterSize = 8

// turnPairs is the pair count on the nested turn side of a register.
const turnPairs = RegisterSize / 2

// Palette is the display color cycle for circuits, applied in creation
// order.
var Palette = []string{
	"#e5484d", // red
	"#2f6fed", // blue
	"#2bb673", // green
	"#f5a623", // amber
	"#9b59b6", // purple
	"#16a2b8", // teal
	"#d4589b", // magenta
	"#7a7f2a", // olive
}

// Circuit is one continuous pipe loop: an ordered path of lines and arcs,
// a display color, and the total physical length.
type Circuit struct {
	Path     Path    `json:"path" bson:"path"`
	Color    string  `json:"color" bson:"color"`
	LengthMM float64 `json:"length_mm" bson:"length_mm"`

	// Plates holds the indices (into the routed plate slice) this circuit
	// serves. Every plate belongs to exactly one circuit, except plates of
	// a dropped incomplete trailing register.
	Plates []int `json:"plates" bson:"plates"`
}

// register is one assembled eight-plate block before circuit accumulation.
type register struct {
	path     Path
	lengthMM float64
	plates   []int
}

// RouteCircuits assembles length-bounded circuits over a plate layout.
//
// Plates are sorted along the grid axis and partitioned into consecutive
// registers of eight. Every register gets nested U-turns on the side
// opposite the connection; the first register additionally terminates its
// first two plates as straight supply/return stubs. Registers are packed
// greedily into circuits: a register joins the running circuit while the
// accumulated length stays within the configured maximum, otherwise the
// circuit is finalized and a new one starts. A single register that
// already exceeds the maximum still becomes its own circuit; the limit
// bounds accumulation across registers, not one register's own geometry.
//
// Zero complete registers yield an empty circuit list and no error.
func RouteCircuits(plates []plan.Plate, side plan.ConnectionSide, room plan.Room, cfg plan.Config) ([]Circuit, error) {
	if err := room.Validate(); err != nil {
		return nil, err
	}
	if !side.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown connection side %q", side)
	}
	if len(plates) == 0 {
		return []Circuit{}, nil
	}
	if !side.CompatibleWith(plates[0].Orientation) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"connection side %q does not face the ends of %s plates", side, plates[0].Orientation)
	}

	order := make([]int, len(plates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return plates[order[a]].Pos < plates[order[b]].Pos
	})

	var circuits []Circuit
	var current register

	flush := func() {
		if len(current.plates) == 0 {
			return
		}
		circuits = append(circuits, Circuit{
			Path:     current.path,
			Color:    Palette[len(circuits)%len(Palette)],
			LengthMM: current.lengthMM,
			Plates:   current.plates,
		})
		current = register{}
	}

	for block := 0; block+RegisterSize <= len(order); block += RegisterSize {
		reg := buildRegister(plates, order[block:block+RegisterSize], block == 0, side, room, cfg)

		if len(current.plates) > 0 && current.lengthMM+reg.lengthMM > cfg.MaxCircuitLength {
			flush()
		}
		current.path = append(current.path, reg.path...)
		current.lengthMM += reg.lengthMM
		current.plates = append(current.plates, reg.plates...)
	}
	flush()

	if circuits == nil {
		circuits = []Circuit{}
	}
	return circuits, nil
}

// buildRegister connects one eight-plate block: plate runs, the nested
// turns on the far side, and either the start-exception pattern (stubs on
// plates 1–2, one inner loop, one double nest) or the standard double
// nest on the connection side.
func buildRegister(plates []plan.Plate, idx []int, first bool, side plan.ConnectionSide, room plan.Room, cfg plan.Config) register {
	turnSide := side.Opposite()
	turnDir := turnSide.Direction()
	connDir := side.Direction()

	maxDepth := room.ToDrawing(cfg.TurnMaxDepth)
	connDepth := room.ToDrawing(cfg.ConnTurnDepth)
	radius := room.ToDrawing(cfg.CornerRadius)
	stub := room.ToDrawing(cfg.StubLength)

	reg := register{plates: append([]int(nil), idx...)}

	add := func(p Path) {
		reg.path = append(reg.path, p...)
	}

	// Pipe runs along each plate.
	for _, i := range idx {
		add(Path{Line(plates[i].Start, plates[i].End)})
	}

	// Turn side: always fully nested, depth falling linearly outside-in.
	for k := 0; k < turnPairs; k++ {
		depth := maxDepth * float64(turnPairs-k) / float64(turnPairs)
		a := plates[idx[k]].EndOn(turnSide)
		b := plates[idx[RegisterSize-1-k]].EndOn(turnSide)
		add(BuildTurn(a, b, depth, turnDir, radius))
	}

	// Connection side.
	connect := func(i, j int) {
		a := plates[idx[i]].EndOn(side)
		b := plates[idx[j]].EndOn(side)
		add(BuildTurn(a, b, connDepth, connDir, radius))
	}
	if first {
		// Supply and return leads project straight out of the first two
		// plates; they are not loops.
		add(BuildStub(plates[idx[0]].EndOn(side), connDir, stub))
		add(BuildStub(plates[idx[1]].EndOn(side), connDir, stub))
		connect(2, 3)
		connect(4, 7)
		connect(5, 6)
	} else {
		connect(0, 3)
		connect(1, 2)
		connect(4, 7)
		connect(5, 6)
	}

	reg.lengthMM = room.ToMM(reg.path.Length())
	return reg
}
