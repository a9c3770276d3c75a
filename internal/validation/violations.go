package validation

// ViolationSet maps a JSON field name to its failure messages in rule order.
type ViolationSet map[string][]string

func (v ViolationSet) Add(field, message string) {
	v[field] = append(v[field], message)
}

func (v ViolationSet) Empty() bool { return len(v) == 0 }

func (v ViolationSet) Has(field string) bool {
	_, ok := v[field]
	return ok
}
