// Package validation evaluates static, per-DTO rule tables and collects every
// violated rule as a field-keyed list of messages.
//
// A rule is (field, activation, predicate, message). Activation decides whether the
// rule applies to this DTO for this operation; the predicate is either a
// go-playground/validator tag evaluated against one extracted value, or a plain
// function over the whole DTO. Rule tables are built once at package init and are
// read concurrently without locking.
package validation
