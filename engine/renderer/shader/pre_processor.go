// pre_processor.go implements the WGSL shader pre-processor. It scans shader source for @qm: annotations and
// replaces them with registered struct sources, constant declarations or generated statement blocks, collecting
// the list of annotations it consumed.
package shader

import (
	"fmt"
	"strings"
)

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// includes maps include names to WGSL source fragments.
	includes map[string]string
	// defines maps constant names to their WGSL literal values.
	defines map[string]string
	// blocks maps block names to generated WGSL statements.
	blocks map[string]string

	// declarations accumulates the annotations consumed during a Process call.
	declarations []Annotation
}

// PreProcessor processes raw WGSL shader source containing @qm: annotations.
type PreProcessor interface {
	// Process replaces every annotation in source with its registered text.
	//
	// Parameters:
	//   - source: the raw WGSL source code containing annotations
	//
	// Returns:
	//   - string: the processed WGSL source
	//   - error: an error if an annotation is malformed or references an unregistered name
	Process(source string) (string, error)

	// Declarations returns the annotations consumed by the most recent Process call, in source order.
	//
	// Returns:
	//   - []Annotation: the consumed annotations
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the given includes, constant values and statement blocks.
//
// Parameters:
//   - includes: include name to WGSL source
//   - defines: constant name to WGSL literal value
//   - blocks: block name to WGSL statements
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor(includes, defines, blocks map[string]string) PreProcessor {
	return &preProcessor{
		includes: includes,
		defines:  defines,
		blocks:   blocks,
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case AnnotationTypeInclude:
			src, ok := p.includes[a.Name]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @qm:include argument %q", a.Line, a.Name)
			}
			out = append(out, src)
		case AnnotationTypeDefine:
			value, ok := p.defines[a.Name]
			if !ok {
				return "", fmt.Errorf("line %d: no value for @qm:define %q", a.Line, a.Name)
			}
			out = append(out, fmt.Sprintf("%sconst %s: %s = %s;", a.Indent, a.Name, a.WGSLType, value))
		case AnnotationTypeBlock:
			block, ok := p.blocks[a.Name]
			if !ok {
				return "", fmt.Errorf("line %d: no source for @qm:block %q", a.Line, a.Name)
			}
			for _, stmt := range strings.Split(strings.TrimRight(block, "\n"), "\n") {
				if stmt == "" {
					out = append(out, "")
					continue
				}
				out = append(out, a.Indent+stmt)
			}
		}
		p.declarations = append(p.declarations, *a)
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
