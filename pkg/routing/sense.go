package routing

import (
	"fmt"

	"aforo/pkg/datastructure"
	"aforo/pkg/geo"
)

// Cardinal codes at a checkpoint. The quadrant partition over planar
// bearings (degrees, [-180,180), 0 = +X axis = east):
//
//	[-45,  45)  -> East  = 2
//	[ 45, 135)  -> North = 1
//	[135, 180) u [-180,-135) -> West = 3
//	[-135, -45) -> South = 4
//
// The labelling must agree with the sense catalogue convention used by the
// capacity survey.
type Cardinal int

const (
	North Cardinal = 1
	East  Cardinal = 2
	West  Cardinal = 3
	South Cardinal = 4
)

func CardinalFromBearing(deg float64) Cardinal {
	deg = geo.NormalizeBearing(deg)
	switch {
	case deg >= -45 && deg < 45:
		return East
	case deg >= 45 && deg < 135:
		return North
	case deg >= -135 && deg < -45:
		return South
	default:
		return West
	}
}

type senseKind int

const (
	senseInvalid senseKind = iota
	senseAggregate
	senseDirectional
)

// Sense is the direction identifier at the checkpoint:
// aggregate sentinel "0", a directional pair "a-b", or invalid.
type Sense struct {
	kind senseKind
	in   Cardinal
	out  Cardinal
}

func AggregateSense() Sense {
	return Sense{kind: senseAggregate}
}

func DirectionalSense(in, out Cardinal) Sense {
	return Sense{kind: senseDirectional, in: in, out: out}
}

func InvalidSense() Sense {
	return Sense{kind: senseInvalid}
}

func (s Sense) IsValid() bool {
	return s.kind != senseInvalid
}

func (s Sense) IsAggregate() bool {
	return s.kind == senseAggregate
}

// Code is the capacity-table key form: "0" for aggregate, "a-b" for
// directional, "" for invalid.
func (s Sense) Code() string {
	switch s.kind {
	case senseAggregate:
		return "0"
	case senseDirectional:
		return fmt.Sprintf("%d-%d", s.in, s.out)
	default:
		return ""
	}
}

// Catalogue holds the permitted sense codes per checkpoint. A nil catalogue
// (or a checkpoint absent from it) permits every mechanically formed code.
type Catalogue map[string]map[string]struct{}

func (c Catalogue) Permits(checkpointID, code string) bool {
	if c == nil {
		return true
	}
	codes, ok := c[checkpointID]
	if !ok {
		return true
	}
	_, ok = codes[code]
	return ok
}

// DeriveSense derives the direction code at the checkpoint from the
// constrained path. Directional checkpoints take the bearing of the two
// edges incident to the first occurrence of the checkpoint node; aggregate
// checkpoints are forced to "0" with no bearing work.
func DeriveSense(g *datastructure.Graph, path []int32, checkpointNode int32, checkpointID string,
	directional bool, cat Catalogue) Sense {
	if !directional {
		return AggregateSense()
	}

	u, w, ok := datastructure.NeighbourNodesOnPath(path, checkpointNode)
	if !ok {
		return InvalidSense()
	}

	cp := g.GetNode(checkpointNode)
	prev := g.GetNode(u)
	next := g.GetNode(w)

	thetaIn := geo.PlanarBearing(prev.X, prev.Y, cp.X, cp.Y)
	thetaOut := geo.PlanarBearing(cp.X, cp.Y, next.X, next.Y)

	candidate := DirectionalSense(CardinalFromBearing(thetaIn), CardinalFromBearing(thetaOut))
	if !cat.Permits(checkpointID, candidate.Code()) {
		return InvalidSense()
	}
	return candidate
}
