package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ipryshchepa/FTG12-sub001/internal/dtos"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

const (
	DetailValidation   = "One or more validation errors occurred."
	DetailPersistence  = "A database error occurred while saving changes. Please try again."
	DetailInternal     = "An unexpected error occurred. Please try again later."
	DetailUnavailable  = "The service is temporarily unavailable. Please try again later."
	detailUnknownFault = "The request could not be completed."
)

// ProblemMapper turns any request failure into exactly one ProblemResponse and
// exactly one log entry. diagnosticMode only changes what an unclassified fault
// exposes to the client; logs always carry the full error.
type ProblemMapper struct {
	diagnosticMode bool
	logger         *logrus.Logger
}

func NewProblemMapper(diagnosticMode bool, logger *logrus.Logger) *ProblemMapper {
	if logger == nil {
		logger = utils.Logger
	}
	return &ProblemMapper{diagnosticMode: diagnosticMode, logger: logger}
}

func (m *ProblemMapper) DiagnosticMode() bool { return m.diagnosticMode }

// Map classifies err, logs it, and builds the client-facing response.
func (m *ProblemMapper) Map(err error, instance string) dtos.ProblemResponse {
	kind := utils.Classify(err)
	status, title := utils.StatusAndTitle(kind)

	m.log(err, kind, status, instance)

	resp := dtos.ProblemResponse{
		Status:   status,
		Title:    title,
		Instance: instance,
	}

	switch kind {
	case utils.FaultValidation:
		resp.Detail = DetailValidation
		if f := asFault(err); f != nil {
			resp.Errors = map[string][]string(f.Violations)
		}
	case utils.FaultPersistence:
		resp.Detail = DetailPersistence
	case utils.FaultUnavailable:
		resp.Detail = DetailUnavailable
	case utils.FaultNotFound, utils.FaultBadRequest, utils.FaultBusinessRule:
		resp.Detail = detailUnknownFault
		if f := asFault(err); f != nil && f.Message != "" {
			resp.Detail = f.Message
		}
	case utils.FaultUnclassified:
		resp.Detail = DetailInternal
		if m.diagnosticMode && err != nil {
			resp.Detail = err.Error()
		}
	default:
		resp.Detail = DetailInternal
	}
	return resp
}

// Respond maps err for the current request and writes it. The error is fully
// handled once this returns.
func (m *ProblemMapper) Respond(w http.ResponseWriter, r *http.Request, err error) {
	resp := m.Map(err, r.URL.Path)
	utils.RespondWithProblem(w, resp.Status, resp)
}

func (m *ProblemMapper) log(err error, kind utils.FaultKind, status int, instance string) {
	entry := m.logger.WithFields(logrus.Fields{
		"status":   status,
		"fault":    kind.String(),
		"instance": instance,
	})
	if err == nil {
		entry.Error("request failed without an error value")
		return
	}
	// %+v prints the pkg/errors stack when one was recorded.
	entry = entry.WithField("detail", fmt.Sprintf("%+v", err))
	if status >= http.StatusInternalServerError || kind == utils.FaultPersistence {
		entry.Error(err.Error())
	} else {
		entry.Warn(err.Error())
	}
}

func asFault(err error) *utils.Fault {
	var f *utils.Fault
	if errors.As(err, &f) {
		return f
	}
	return nil
}

// NotFoundHandler answers unmatched routes with the same problem shape as
// every other failure.
func (m *ProblemMapper) NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.Respond(w, r, utils.NewNotFound("No resource at %s.", r.URL.Path))
	})
}
