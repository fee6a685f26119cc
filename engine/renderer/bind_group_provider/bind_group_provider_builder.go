package bind_group_provider

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBorrowedViews marks the provider's texture views and samplers as owned by another component, such as a
// render target, so Release does not free them.
//
// Returns:
//   - BindGroupProviderOption: a function that marks the provider's views as borrowed
func WithBorrowedViews() BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.borrowed = true
	}
}
