package validation

import (
	"github.com/go-playground/validator/v10"
)

// validator.Validate caches struct metadata and is safe for concurrent use.
var validate = validator.New()

// Operation is the request kind a DTO is validated for.
type Operation int

const (
	OpCreate Operation = iota
	OpUpdate
)

func (o Operation) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Rule binds one predicate to one field of a DTO type T.
// Exactly one of Tag or Check is set. A nil When means "always".
type Rule[T any] struct {
	Field   string
	When    func(dto T, op Operation) bool
	Value   func(dto T) any
	Tag     string
	Check   func(dto T) bool
	Message string
}

func (r Rule[T]) active(dto T, op Operation) bool {
	return r.When == nil || r.When(dto, op)
}

func (r Rule[T]) passes(dto T) bool {
	if r.Check != nil {
		return r.Check(dto)
	}
	return validate.Var(r.Value(dto), r.Tag) == nil
}

// RuleSet is the fixed, ordered rule table for one DTO type.
type RuleSet[T any] struct {
	name  string
	rules []Rule[T]
}

// NewRuleSet copies rules so later changes to the caller's slice are not observed.
func NewRuleSet[T any](name string, rules ...Rule[T]) *RuleSet[T] {
	cp := make([]Rule[T], len(rules))
	copy(cp, rules)
	return &RuleSet[T]{name: name, rules: cp}
}

func (s *RuleSet[T]) Name() string { return s.name }

// Validate runs every active rule against dto and reports every failure.
// It never fails itself; an empty set means the DTO is valid.
func (s *RuleSet[T]) Validate(dto T, op Operation) ViolationSet {
	out := ViolationSet{}
	for _, r := range s.rules {
		if !r.active(dto, op) {
			continue
		}
		if !r.passes(dto) {
			out.Add(r.Field, r.Message)
		}
	}
	return out
}

// Fields lists the distinct fields covered by the set, in declaration order.
func (s *RuleSet[T]) Fields() []string {
	seen := make(map[string]bool, len(s.rules))
	var out []string
	for _, r := range s.rules {
		if !seen[r.Field] {
			seen[r.Field] = true
			out = append(out, r.Field)
		}
	}
	return out
}

// onCreate activates a rule only for create requests.
func onCreate[T any](_ T, op Operation) bool { return op == OpCreate }

// ifPresent activates a rule only when the optional field is set.
func ifPresent[T any, V any](get func(T) *V) func(T, Operation) bool {
	return func(dto T, _ Operation) bool { return get(dto) != nil }
}

// deref extracts the pointed-to value; only used behind ifPresent.
func deref[T any, V any](get func(T) *V) func(T) any {
	return func(dto T) any { return *get(dto) }
}
