package scoring

// Engine evaluates protocols from a registry. It holds no state between calls:
// a result is a pure function of the protocol id and the supplied values.
type Engine struct {
	registry *Registry
}

// NewEngine creates an engine over the given registry.
func NewEngine(r *Registry) *Engine {
	return &Engine{registry: r}
}

// Registry returns the registry the engine evaluates from.
func (e *Engine) Registry() *Registry { return e.registry }

// Evaluate looks up the protocol, applies the defaulting policy to values and
// runs the protocol's formula. Unknown ids yield a *ConfigurationError and
// unusable values an *InputValidationError; incomplete input is not an error
// and yields a pending result.
func (e *Engine) Evaluate(id string, values Values) (*Result, error) {
	p, err := e.registry.Lookup(id)
	if err != nil {
		return nil, err
	}

	in, err := Resolve(p.Definition(), values)
	if err != nil {
		return nil, err
	}

	result := p.Evaluate(in)
	result.Protocol = id
	return &result, nil
}

// Evaluate runs a built-in protocol.
func Evaluate(id string, values Values) (*Result, error) {
	return NewEngine(Default()).Evaluate(id, values)
}

// ListProtocols describes every built-in protocol for presentation layers.
func ListProtocols() []Definition {
	return Default().List()
}
