package controllers

import (
	"net/http"

	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
	"github.com/ipryshchepa/FTG12-sub001/internal/validation"
)

// decodeValid reads the JSON body into a T and runs the rule set over it.
// A non-empty ViolationSet comes back as a validation fault.
func decodeValid[T any](r *http.Request, rules *validation.RuleSet[T], op validation.Operation) (T, error) {
	var dto T
	if err := utils.DecodeJSON(r, &dto); err != nil {
		return dto, err
	}
	if vs := rules.Validate(dto, op); !vs.Empty() {
		return dto, utils.NewValidationFault(vs)
	}
	return dto, nil
}
