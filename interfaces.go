package go_facturacom

import (
	"github.com/stremovskyy/go-facturacom/log"
)

// Facturacom is the main SDK interface: a client binding for the Factura.com
// electronic-invoicing REST API.
//
// Supported resources:
//   - CFDI 3.3 tax invoices (list, create, cancel, send via email, xml/pdf)
//   - Customers (list, create, find by RFC, update)
//
// Credentials go into the F-API-KEY / F-SECRET-KEY headers on every request;
// the mode picks the sandbox or production host. Configure everything before
// issuing requests from multiple goroutines: setter calls apply to the next
// request, headers of in-flight calls are never rewritten.
type Facturacom interface {
	// CFDI returns operations over CFDI 3.3 tax invoices.
	CFDI() *CFDIService
	// Customers returns operations over customers.
	Customers() *CustomerService

	// SetAPIKey replaces the F-API-KEY credential for subsequent requests.
	SetAPIKey(key string)
	// SetSecretKey replaces the F-SECRET-KEY credential for subsequent requests.
	SetSecretKey(secret string)
	// SetMode switches between ModeSandbox and ModeProduction.
	SetMode(mode Mode) error
	// BaseURL returns "<host>/api/v<version>"; empty version selects the default.
	BaseURL(version string) (string, error)

	// SetLogLevel changes SDK logging level.
	SetLogLevel(level log.Level)
}
