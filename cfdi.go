package go_facturacom

import (
	"net/http"

	"github.com/stremovskyy/go-facturacom/consts"
)

// CFDIService groups operations over CFDI 3.3 tax invoices.
// Served under /api/v3/cfdi33.
type CFDIService struct {
	*client
}

// List returns the CFDIs matching params, in server order.
// Under the hood: GET /api/v3/cfdi33/list.
func (s *CFDIService) List(params Params, opts ...RunOption) ([]*Record, error) {
	class, err := s.classURL(consts.SegmentCFDI33, APIVersionCFDI33)
	if err != nil {
		return nil, err
	}

	ro := collectRunOptions(opts)
	envelope, err := s.request("cfdi.list", http.MethodGet, class+consts.PathList, "", params, ro)
	if err != nil || envelope == nil {
		return nil, err
	}

	data, ok := envelopeData(envelope)
	if !ok {
		return nil, &UnexpectedResponseError{Op: "cfdi.list", Msg: "envelope has no data field"}
	}
	return hydrateList("cfdi.list", data)
}

// Create issues a new CFDI on the server.
// Under the hood: POST /api/v3/cfdi33/create.
//
// The create envelope carries the new invoice's fields at the top level
// (uid, uuid, invoice folio and so on) rather than under data; the record is
// hydrated from it directly with the human-readable message discarded.
func (s *CFDIService) Create(params Params, opts ...RunOption) (*Record, error) {
	class, err := s.classURL(consts.SegmentCFDI33, APIVersionCFDI33)
	if err != nil {
		return nil, err
	}

	ro := collectRunOptions(opts)
	envelope, err := s.request("cfdi.create", http.MethodPost, class+consts.PathCreate, "", params, ro)
	if err != nil || envelope == nil {
		return nil, err
	}

	delete(envelope, "message")
	return NewRecord(envelope), nil
}

// Cancel voids an issued CFDI. Motive codes accepted by the SAT are listed
// in CancellationMotiveCatalog.
// Under the hood: GET /api/v3/cfdi33/<uid>/cancel.
func (s *CFDIService) Cancel(uid string, params Params, opts ...RunOption) error {
	instance, err := s.cfdiInstanceURL("cfdi.cancel", uid)
	if err != nil {
		return err
	}
	_, err = s.request("cfdi.cancel", http.MethodGet, instance+consts.PathCancel, uid, params, collectRunOptions(opts))
	return err
}

// SendViaEmail asks the server to mail the invoice to its receiver.
// Under the hood: GET /api/v3/cfdi33/<uid>/email.
func (s *CFDIService) SendViaEmail(uid string, params Params, opts ...RunOption) error {
	instance, err := s.cfdiInstanceURL("cfdi.email", uid)
	if err != nil {
		return err
	}
	_, err = s.request("cfdi.email", http.MethodGet, instance+consts.PathEmail, uid, params, collectRunOptions(opts))
	return err
}

// XMLURL returns the link to the invoice's signed XML document.
// Informational; nothing is fetched.
func (s *CFDIService) XMLURL(uid string) (string, error) {
	instance, err := s.cfdiInstanceURL("cfdi.xml_url", uid)
	if err != nil {
		return "", err
	}
	return instance + consts.PathXML, nil
}

// PDFURL returns the link to the invoice's PDF rendering.
// Informational; nothing is fetched.
func (s *CFDIService) PDFURL(uid string) (string, error) {
	instance, err := s.cfdiInstanceURL("cfdi.pdf_url", uid)
	if err != nil {
		return "", err
	}
	return instance + consts.PathPDF, nil
}

// DownloadXML fetches the invoice's signed XML document.
func (s *CFDIService) DownloadXML(uid string) ([]byte, error) {
	endpoint, err := s.XMLURL(uid)
	if err != nil {
		return nil, err
	}
	return s.download("cfdi.xml", endpoint, uid)
}

// DownloadPDF fetches the invoice's PDF rendering.
func (s *CFDIService) DownloadPDF(uid string) ([]byte, error) {
	endpoint, err := s.PDFURL(uid)
	if err != nil {
		return nil, err
	}
	return s.download("cfdi.pdf", endpoint, uid)
}

func (s *CFDIService) cfdiInstanceURL(op, uid string) (string, error) {
	if uid == "" {
		return "", &ValidationError{Op: op, Msg: "uid is required"}
	}
	return s.instanceURL(consts.SegmentCFDI33, APIVersionCFDI33, uid)
}
