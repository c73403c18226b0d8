package balance

import "strings"

// Registry holds extractors by bank name.
type Registry struct {
	extractors map[string]Extractor
	order      []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]Extractor)}
}

// Register adds an extractor. Panics on duplicate bank.
func (r *Registry) Register(e Extractor) {
	key := strings.ToLower(e.Bank())
	if _, ok := r.extractors[key]; ok {
		panic("duplicate balance extractor: " + key)
	}
	r.extractors[key] = e
	r.order = append(r.order, key)
}

// Get returns the extractor for bank, or nil.
func (r *Registry) Get(bank string) Extractor {
	return r.extractors[strings.ToLower(bank)]
}

// Banks returns the registered bank names in registration order.
func (r *Registry) Banks() []string {
	return append([]string(nil), r.order...)
}

// Built-in marker patterns.
const (
	BofADateMarker     = `^for .* to (.*) Account number: .*$`
	BofABalanceMarker  = `^Ending balance on .* \$(.*)$`
	ChaseDateMarker    = `^.*through(.*)$`
	ChaseBalanceMarker = `^Ending Balance \$(.*)$`
)
