package go_facturacom

import "strings"

// CancellationMotive describes one SAT cancellation motive code accepted by
// the CFDI cancel endpoint. Motive 01 additionally requires the folio of the
// substituting invoice.
type CancellationMotive struct {
	Code string
	Text string

	// RequiresSubstitution marks motives that must reference a replacement
	// CFDI (folioSustitucion).
	RequiresSubstitution bool
}

// CancellationMotiveCatalog lists the motive codes defined by the SAT for
// CFDI cancellation.
var CancellationMotiveCatalog = map[string]CancellationMotive{
	"01": {
		Code:                 "01",
		Text:                 "Comprobante emitido con errores con relación",
		RequiresSubstitution: true,
	},
	"02": {
		Code: "02",
		Text: "Comprobante emitido con errores sin relación",
	},
	"03": {
		Code: "03",
		Text: "No se llevó a cabo la operación",
	},
	"04": {
		Code: "04",
		Text: "Operación nominativa relacionada en una factura global",
	},
}

// LookupCancellationMotive resolves a motive code. Single-digit input is
// accepted ("1" resolves to "01").
func LookupCancellationMotive(code string) (CancellationMotive, bool) {
	code = strings.TrimSpace(code)
	if len(code) == 1 {
		code = "0" + code
	}
	motive, ok := CancellationMotiveCatalog[code]
	return motive, ok
}
