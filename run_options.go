package go_facturacom

import (
	"encoding/json"

	"github.com/stremovskyy/go-facturacom/log"
)

// RunOption controls behavior of a single API call.
type RunOption func(*runOptions)

// DryRunHandler receives info about a skipped request.
type DryRunHandler func(endpoint string, params Params)

type runOptions struct {
	dryRun       bool
	dryRunHandle DryRunHandler
	silent       bool
}

var dryRunLogger = log.NewLogger("Facturacom DryRun:")

// DryRun skips the underlying HTTP call.
//
// Optional handler can be provided to inspect the resolved endpoint and params.
func DryRun(handler ...DryRunHandler) RunOption {
	return func(o *runOptions) {
		o.dryRun = true
		if len(handler) > 0 && handler[0] != nil {
			o.dryRunHandle = handler[0]
			return
		}
		o.dryRunHandle = defaultDryRunHandler
	}
}

// SilentErrors suppresses envelope-level failures: when the server replies
// with a non-success status, the call returns no result and no error.
// Transport failures and non-2xx statuses still error.
func SilentErrors() RunOption {
	return func(o *runOptions) {
		o.silent = true
	}
}

func collectRunOptions(opts []RunOption) *runOptions {
	if len(opts) == 0 {
		return &runOptions{}
	}
	r := &runOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (o *runOptions) isDryRun() bool {
	return o != nil && o.dryRun
}

func (o *runOptions) isSilent() bool {
	return o != nil && o.silent
}

func (o *runOptions) handleDryRun(endpoint string, params Params) {
	if o == nil || !o.dryRun {
		return
	}
	if o.dryRunHandle != nil {
		o.dryRunHandle(endpoint, params)
	}
}

func defaultDryRunHandler(endpoint string, params Params) {
	dryRunLogger.Info("Dry run: skipping request to %s", endpoint)
	if params == nil {
		dryRunLogger.Info("Dry run params: <nil>")
		return
	}
	out, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		dryRunLogger.Info("Dry run params: unable to marshal: %v", err)
		return
	}
	dryRunLogger.Info("Dry run params:\n%s", out)
}
