package shacl

import (
	"strings"

	"github.com/google/uuid"
)

// Cardinality bounds how many values a property shape admits.
type Cardinality int

const (
	// Unbounded adds no count constraint.
	Unbounded Cardinality = iota
	// AtMostOne adds sh:maxCount 1.
	AtMostOne
	// ExactlyOne adds sh:minCount 1 and sh:maxCount 1.
	ExactlyOne
)

func (c Cardinality) String() string {
	switch c {
	case AtMostOne:
		return "at-most-one"
	case ExactlyOne:
		return "exactly-one"
	default:
		return "unbounded"
	}
}

// blankNamespace seeds the name-based UUIDs used as blank node labels, so the
// same shape always gets the same label.
var blankNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(SH))

func blankFor(parts ...string) Term {
	id := uuid.NewSHA1(blankNamespace, []byte(strings.Join(parts, "\x00")))
	return Blank("b" + strings.ReplaceAll(id.String(), "-", ""))
}

type shapeKind int

const (
	objectShape shapeKind = iota
	inverseObjectShape
	dataShape
)

func (k shapeKind) String() string {
	switch k {
	case inverseObjectShape:
		return "inverse"
	case dataShape:
		return "data"
	default:
		return "object"
	}
}

type shapeKey struct {
	kind    shapeKind
	subject string
	path    string
	target  string
}

// Shapes writes SHACL shapes into a graph. Property shapes are keyed by
// (subject, path, target): asking twice for the same key returns the same
// node and only adds the new count constraints to it. Property shapes never
// declare their subject as a node shape; callers do that with NodeShape.
type Shapes struct {
	graph      *Graph
	properties map[shapeKey]Term
}

// NewShapes creates a registry writing into g.
func NewShapes(g *Graph) *Shapes {
	return &Shapes{graph: g, properties: map[shapeKey]Term{}}
}

// Graph returns the graph shapes are written to.
func (s *Shapes) Graph() *Graph {
	return s.graph
}

// Len returns the number of distinct property shapes created so far.
func (s *Shapes) Len() int {
	return len(s.properties)
}

// NodeShape declares class as a node shape with an implicit class target.
func (s *Shapes) NodeShape(class string) Term {
	c := IRI(class)
	s.graph.Add(c, RDFType, SHNodeShape)
	s.graph.Add(c, RDFType, RDFSClass)
	return c
}

// ObjectShape requires the values of path on subject to be IRIs of class.
func (s *Shapes) ObjectShape(subject, path, class string, card Cardinality) Term {
	b, created := s.property(shapeKey{objectShape, subject, path, class})
	if created {
		s.graph.Add(b, SHPath, IRI(path))
		s.graph.Add(b, SHNodeKind, SHIRI)
		s.graph.Add(b, SHClass, IRI(class))
	}
	s.cardinality(b, card)
	return b
}

// InverseObjectShape requires the subjects reaching subject along path to be
// IRIs of class.
func (s *Shapes) InverseObjectShape(subject, path, class string, card Cardinality) Term {
	b, created := s.property(shapeKey{inverseObjectShape, subject, path, class})
	if created {
		inverse := blankFor("inverse-path", path)
		s.graph.Add(inverse, SHInversePath, IRI(path))
		s.graph.Add(b, SHPath, inverse)
		s.graph.Add(b, SHNodeKind, SHIRI)
		s.graph.Add(b, SHClass, IRI(class))
	}
	s.cardinality(b, card)
	return b
}

// DataShape requires the values of path on subject to be literals of datatype.
func (s *Shapes) DataShape(subject, path, datatype string, card Cardinality) Term {
	b, created := s.property(shapeKey{dataShape, subject, path, datatype})
	if created {
		s.graph.Add(b, SHPath, IRI(path))
		s.graph.Add(b, SHNodeKind, SHLiteral)
		s.graph.Add(b, SHDatatype, IRI(datatype))
	}
	s.cardinality(b, card)
	return b
}

// UniqueTuple states that no two instances of class share the values of all
// of props. Validation needs the unique-values component, see UniqueComponent.
func (s *Shapes) UniqueTuple(class string, props ...string) Term {
	c := s.NodeShape(class)
	b := blankFor(append([]string{"unique", class}, props...)...)
	s.graph.Add(c, UQUniqueValuesForClass, b)
	for _, p := range props {
		s.graph.Add(b, UQUnqProp, IRI(p))
	}
	s.graph.Add(b, UQUnqForClass, c)
	return b
}

func (s *Shapes) property(key shapeKey) (Term, bool) {
	if b, ok := s.properties[key]; ok {
		return b, false
	}

	b := blankFor(key.kind.String(), key.subject, key.path, key.target)
	s.properties[key] = b
	s.graph.Add(IRI(key.subject), SHProperty, b)
	return b, true
}

func (s *Shapes) cardinality(b Term, card Cardinality) {
	switch card {
	case ExactlyOne:
		s.graph.Add(b, SHMinCount, Integer(1))
		s.graph.Add(b, SHMaxCount, Integer(1))
	case AtMostOne:
		s.graph.Add(b, SHMaxCount, Integer(1))
	}
}

// PropertyShapes returns the property shapes of subject whose sh:path is path,
// following sh:inversePath when inverse is set.
func (g *Graph) PropertyShapes(subject, path string, inverse bool) []Term {
	var result []Term
	for _, b := range g.Objects(IRI(subject), SHProperty) {
		for _, p := range g.Objects(b, SHPath) {
			switch {
			case !inverse && p == IRI(path):
				result = append(result, b)
			case inverse && p.IsBlank() && g.Has(p, SHInversePath, IRI(path)):
				result = append(result, b)
			}
		}
	}
	return result
}

// CardinalityOf reads the count constraints of a property shape back.
func (g *Graph) CardinalityOf(shape Term) Cardinality {
	switch {
	case g.Has(shape, SHMinCount, Integer(1)) && g.Has(shape, SHMaxCount, Integer(1)):
		return ExactlyOne
	case g.Has(shape, SHMaxCount, Integer(1)):
		return AtMostOne
	default:
		return Unbounded
	}
}
