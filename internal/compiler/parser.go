package compiler

import (
	"fmt"

	"github.com/aretw0/bisim/internal/dto"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Parser is responsible for converting raw bytes into a GraphDocument.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a YAML or JSON graph document.
// JSON is accepted because it is a subset of YAML.
func (p *Parser) Parse(data []byte) (*dto.GraphDocument, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse graph: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("failed to parse graph: empty document")
	}

	var doc dto.GraphDocument
	if err := Decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode graph: %w", err)
	}
	return &doc, nil
}

// Decode maps loosely typed document data onto a dto struct.
// Unknown keys are rejected so typos surface early.
func Decode(input any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
