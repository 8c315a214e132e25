package shacl

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
)

//go:embed unique_component.yaml
var uniqueComponentYAML []byte

type componentTemplate struct {
	Component string `yaml:"component"`
	Label     string `yaml:"label"`
	Comment   string `yaml:"comment"`
	Parameter string `yaml:"parameter"`
	Message   string `yaml:"message"`
	Select    string `yaml:"select"`
}

var (
	componentOnce  sync.Once
	componentGraph *Graph
	componentErr   error
)

func loadUniqueComponent() {
	var tmpl componentTemplate
	if err := yaml.UnmarshalWithOptions(uniqueComponentYAML, &tmpl, yaml.Strict()); err != nil {
		componentErr = fmt.Errorf("%w: %w", ErrInvalidComponent, err)
		return
	}
	if tmpl.Component == "" || tmpl.Parameter == "" || strings.TrimSpace(tmpl.Select) == "" {
		componentErr = fmt.Errorf("%w: component, parameter and select are required", ErrInvalidComponent)
		return
	}

	g := NewGraph()
	c := IRI(tmpl.Component)
	g.Add(c, RDFType, SHConstraintComponent)
	if tmpl.Label != "" {
		g.Add(c, RDFSLabel, Literal(tmpl.Label, ""))
	}
	if tmpl.Comment != "" {
		g.Add(c, RDFSComment, Literal(tmpl.Comment, ""))
	}

	param := blankFor("component", tmpl.Component, "parameter")
	g.Add(c, SHParameter, param)
	g.Add(param, SHPath, IRI(tmpl.Parameter))

	validator := blankFor("component", tmpl.Component, "validator")
	g.Add(c, SHNodeValidator, validator)
	g.Add(validator, RDFType, SHSPARQLSelectValidator)
	if tmpl.Message != "" {
		g.Add(validator, SHMessage, Literal(tmpl.Message, ""))
	}
	g.Add(validator, SHSelect, Literal(tmpl.Select, ""))

	componentGraph = g
}

// UniqueComponent returns a copy of the constraint component that validates
// uq:uniqueValuesForClass. The template is parsed once per process.
func UniqueComponent() (*Graph, error) {
	componentOnce.Do(loadUniqueComponent)
	if componentErr != nil {
		return nil, componentErr
	}
	return componentGraph.Clone(), nil
}
