package employee

// Mapper translates one provider's payload shape from and to the canonical
// record. The orchestrator never inspects provider identity beyond the
// registry lookup key, so every variant must carry the full contract.
type Mapper interface {
	// Provider returns the stable key this mapper handles.
	Provider() string

	// Validate runs the provider-specific structural check. It must be called
	// before any mutation is attempted.
	Validate(data map[string]any) bool

	// ExternalID extracts the provider-assigned identifier, the second half
	// of the (provider, external_id) upsert key.
	ExternalID(data map[string]any) string

	// ToEmployee maps the raw payload to a canonical record, including a
	// verbatim snapshot of the payload itself.
	ToEmployee(data map[string]any) *Employee

	// ToTrackTik maps a canonical record to the TrackTik wire shape. Absent
	// optional fields are omitted, never sent as nulls.
	ToTrackTik(empl *Employee) map[string]any
}

type MapperRegistry struct {
	mappers map[string]Mapper
}

func NewMapperRegistry(mappers ...Mapper) *MapperRegistry {
	r := &MapperRegistry{mappers: make(map[string]Mapper, len(mappers))}
	for _, m := range mappers {
		r.mappers[m.Provider()] = m
	}
	return r
}

func (r *MapperRegistry) Lookup(provider string) (Mapper, bool) {
	m, ok := r.mappers[provider]
	return m, ok
}
