package go_facturacom

import (
	"encoding/json"
	"runtime"
)

// Mode selects which Factura.com deployment the client talks to.
type Mode string

const (
	ModeSandbox    Mode = "SANDBOX"
	ModeProduction Mode = "PRODUCTION"
)

func (m Mode) valid() bool {
	return m == ModeSandbox || m == ModeProduction
}

// API versions differ per resource: CFDI 3.3 lives under /api/v3,
// customers under /api/v1.
const (
	APIVersionCFDI33    = "3"
	APIVersionCustomers = "1"
)

// Params carries the fields of a single API call.
//
// The Factura.com API is schemaless: the accepted field set differs per CFDI
// type and the server tolerates unknown keys, so params stay a plain map
// instead of fixed structs. On GET requests params become the query string;
// slice values turn into repeated query keys. On other methods params are
// sent as the JSON body (nil means no body at all).
type Params map[string]any

// clientUserAgent builds the X-Facturacom-Client-User-Agent telemetry blob.
// Informational only; the server uses it to identify the binding.
func clientUserAgent() string {
	blob := struct {
		Lang        string `json:"lang"`
		LangVersion string `json:"lang_version"`
		Uname       string `json:"uname"`
	}{
		Lang:        "go",
		LangVersion: runtime.Version(),
		Uname:       runtime.GOOS + "/" + runtime.GOARCH,
	}
	out, err := json.Marshal(blob)
	if err != nil {
		return `{"lang":"go"}`
	}
	return string(out)
}
