package opts

// FieldDescriptor describes one option: its name, inferred type and the
// constraints of its mutate rule.
type FieldDescriptor struct {
	Path     string     `json:"path"`
	Type     string     `json:"type"`
	Kind     string     `json:"kind"`
	Label    string     `json:"label,omitempty"`
	Fallback string     `json:"fallback"`
	Bounds   *IntBounds `json:"bounds,omitempty"`
	Variants []string   `json:"variants,omitempty"`
}

// Schema returns the descriptor schema of the registry in menu order.
func (r *Registry) Schema() SchemaDocument {
	fields := make([]FieldDescriptor, 0, len(r.entries))
	for _, entry := range r.entries {
		fields = append(fields, entry.Descriptor.field(entry.Name, r.converters))
	}
	return SchemaDocument{
		Format:   SchemaFormatDescriptors,
		Document: fields,
	}
}
