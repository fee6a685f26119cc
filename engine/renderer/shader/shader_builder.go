package shader

// ShaderBuilderOption is a function that configures a shader before its source is processed.
type ShaderBuilderOption func(*shader)

// WithInclude registers a WGSL source fragment for //@qm:include <name>.
//
// Parameters:
//   - name: the include name
//   - source: the WGSL source injected at the annotation
//
// Returns:
//   - ShaderBuilderOption: a function that applies the include to a shader
func WithInclude(name, source string) ShaderBuilderOption {
	return func(s *shader) {
		s.includes[name] = source
	}
}

// WithDefine supplies the value of a //@qm:define <name> <type> constant.
//
// Parameters:
//   - name: the constant name
//   - value: the WGSL literal, e.g. "40" or "1.5e-01"
//
// Returns:
//   - ShaderBuilderOption: a function that applies the constant to a shader
func WithDefine(name, value string) ShaderBuilderOption {
	return func(s *shader) {
		s.defines[name] = value
	}
}

// WithDefines supplies several constant values at once.
func WithDefines(values map[string]string) ShaderBuilderOption {
	return func(s *shader) {
		for k, v := range values {
			s.defines[k] = v
		}
	}
}

// WithBlock supplies the statements of a //@qm:block <name> annotation.
//
// Parameters:
//   - name: the block name
//   - statements: the WGSL statements, one per line
//
// Returns:
//   - ShaderBuilderOption: a function that applies the block to a shader
func WithBlock(name, statements string) ShaderBuilderOption {
	return func(s *shader) {
		s.blocks[name] = statements
	}
}
