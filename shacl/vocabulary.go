package shacl

// Namespaces
const (
	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"
	XSD  = "http://www.w3.org/2001/XMLSchema#"
	SH   = "http://www.w3.org/ns/shacl#"
	// UQ is the unique-values vocabulary used for tuple uniqueness.
	UQ = "http://sirius-labs.no/shapes/unique#"
)

// Prefix binds a short name to a namespace in serialized output.
type Prefix struct {
	Name      string
	Namespace string
}

// Prefixes lists the bindings every serializer declares, sorted by name.
var Prefixes = []Prefix{
	{Name: "rdf", Namespace: RDF},
	{Name: "rdfs", Namespace: RDFS},
	{Name: "sh", Namespace: SH},
	{Name: "uq", Namespace: UQ},
	{Name: "xsd", Namespace: XSD},
}

var (
	RDFType   = IRI(RDF + "type")
	RDFSClass = IRI(RDFS + "Class")

	RDFSLabel   = IRI(RDFS + "label")
	RDFSComment = IRI(RDFS + "comment")

	SHNodeShape   = IRI(SH + "NodeShape")
	SHProperty    = IRI(SH + "property")
	SHPath        = IRI(SH + "path")
	SHInversePath = IRI(SH + "inversePath")
	SHNodeKind    = IRI(SH + "nodeKind")
	SHIRI         = IRI(SH + "IRI")
	SHLiteral     = IRI(SH + "Literal")
	SHClass       = IRI(SH + "class")
	SHDatatype    = IRI(SH + "datatype")
	SHMinCount    = IRI(SH + "minCount")
	SHMaxCount    = IRI(SH + "maxCount")

	SHConstraintComponent   = IRI(SH + "ConstraintComponent")
	SHParameter             = IRI(SH + "parameter")
	SHNodeValidator         = IRI(SH + "nodeValidator")
	SHSPARQLSelectValidator = IRI(SH + "SPARQLSelectValidator")
	SHMessage               = IRI(SH + "message")
	SHSelect                = IRI(SH + "select")

	UQUniqueValuesForClass = IRI(UQ + "uniqueValuesForClass")
	UQUnqProp              = IRI(UQ + "unqProp")
	UQUnqForClass          = IRI(UQ + "unqForClass")
)
