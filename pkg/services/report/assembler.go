package report

import (
	"fmt"

	"github.com/erptools/odoo-insight/pkg/models/api"
)

// Run executes one request body and wraps its outcome into the response
// envelope. This is the single error boundary of the engine: returned errors
// and panics alike become {success:false, error:...}; nothing propagates past
// a request.
func Run(fn func() (any, error)) (env api.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			env = api.Failure(fmt.Sprintf("%v", r))
		}
	}()

	result, err := fn()
	if err != nil {
		return api.Failure(err.Error())
	}
	return api.Success(result)
}
