package middleware

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	oapimiddleware "github.com/oapi-codegen/nethttp-middleware"
	"go.uber.org/zap"

	"github.com/exchangedesk/fortworth1031/platform/go/problem"
)

// ContractValidator rejects requests that do not match doc, answering with problem+json.
// The API is public, so operations never declare security.
func ContractValidator(doc *openapi3.T, logger *zap.Logger) func(http.Handler) http.Handler {
	validate := oapimiddleware.OapiRequestValidatorWithOptions(doc, &oapimiddleware.Options{
		Options: openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
		ErrorHandler: func(w http.ResponseWriter, message string, statusCode int) {
			title := "Invalid request"
			problemType := problem.TypeBadRequest
			if statusCode == http.StatusNotFound {
				title = "Resource not found"
				problemType = problem.TypeNotFound
			}
			logger.Warn("api request rejected by contract", zap.Int("status", statusCode), zap.String("reason", message))
			problem.Write(w, problem.New(statusCode, title, message, problemType, nil))
		},
	})

	return validate
}
