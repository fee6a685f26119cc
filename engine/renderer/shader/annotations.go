// annotations.go defines the annotation types and parser for the WGSL shader pre-processor. Annotations are
// single-line WGSL comments prefixed with @qm: that inject shared struct sources, compile-time constants and
// generated statement blocks into a shader template.
package shader

import (
	"fmt"
	"regexp"
	"strings"
)

// annotationPrefix is the marker that identifies an annotation within a WGSL comment line.
const annotationPrefix = "@qm:"

// identifierRegex matches a WGSL identifier.
var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// AnnotationTypeInclude injects a registered WGSL source fragment, typically a uniform struct shared by several
	// shader stages.
	//
	// Syntax: //@qm:include <name>
	AnnotationTypeInclude AnnotationType = "include"

	// AnnotationTypeDefine emits a module-scope constant whose value is supplied when the shader is built.
	//
	// Syntax: //@qm:define <NAME> <wgsl_type>
	//
	// Example: //@qm:define SAMPLE_COUNT i32 becomes const SAMPLE_COUNT: i32 = 40;
	AnnotationTypeDefine AnnotationType = "define"

	// AnnotationTypeBlock injects a generated block of WGSL statements.
	//
	// Syntax: //@qm:block <name>
	AnnotationTypeBlock AnnotationType = "block"
)

// Annotation is a single parsed @qm: annotation.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType
	// Name is the include, constant or block name.
	Name string
	// WGSLType is the constant type of a define annotation, empty otherwise.
	WGSLType string
	// Line is the 1-based source line of the annotation.
	Line int
	// Indent is the leading whitespace of the annotation line, reused for the injected text.
	Indent string
}

// parseAnnotation attempts to parse a single line of WGSL source as an @qm: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	comment, ok := strings.CutPrefix(trimmed, "//")
	if !ok {
		return nil, nil
	}
	after, ok := strings.CutPrefix(strings.TrimSpace(comment), annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @qm annotation", lineNum)
	}
	a := &Annotation{
		Type:   AnnotationType(args[0]),
		Line:   lineNum,
		Indent: line[:len(line)-len(strings.TrimLeft(line, " \t"))],
	}

	switch a.Type {
	case AnnotationTypeInclude, AnnotationTypeBlock:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @qm %s annotation requires exactly one argument", lineNum, a.Type)
		}
	case AnnotationTypeDefine:
		if len(args) != 3 {
			return nil, fmt.Errorf("line %d: @qm define annotation requires a name and a type", lineNum)
		}
		a.WGSLType = args[2]
	default:
		return nil, fmt.Errorf("line %d: unknown @qm annotation type %q", lineNum, args[0])
	}

	if !identifierRegex.MatchString(args[1]) {
		return nil, fmt.Errorf("line %d: invalid name %q in @qm %s annotation", lineNum, args[1], a.Type)
	}
	a.Name = args[1]
	return a, nil
}
