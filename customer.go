package go_facturacom

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/stremovskyy/go-facturacom/consts"
)

// CustomerService groups operations over customers.
// Served under /api/v1/clients (fixed segment, not the type name).
type CustomerService struct {
	*client
}

// List returns the customers matching params, in server order.
// Under the hood: GET /api/v1/clients.
func (s *CustomerService) List(params Params, opts ...RunOption) ([]*Record, error) {
	class, err := s.classURL(consts.SegmentClients, APIVersionCustomers)
	if err != nil {
		return nil, err
	}

	ro := collectRunOptions(opts)
	envelope, err := s.request("customer.list", http.MethodGet, class, "", params, ro)
	if err != nil || envelope == nil {
		return nil, err
	}

	data, ok := envelopeData(envelope)
	if !ok {
		return nil, &UnexpectedResponseError{Op: "customer.list", Msg: "envelope has no data field"}
	}
	return hydrateList("customer.list", data)
}

// Create registers a new customer.
// Under the hood: POST /api/v1/clients/create.
func (s *CustomerService) Create(params Params, opts ...RunOption) (*Record, error) {
	class, err := s.classURL(consts.SegmentClients, APIVersionCustomers)
	if err != nil {
		return nil, err
	}

	ro := collectRunOptions(opts)
	envelope, err := s.request("customer.create", http.MethodPost, class+consts.PathCreate, "", params, ro)
	if err != nil || envelope == nil {
		return nil, err
	}
	return customerFromEnvelope("customer.create", envelope)
}

// Find looks a customer up by RFC (the Mexican taxpayer id).
// Under the hood: GET /api/v1/clients/<rfc>.
func (s *CustomerService) Find(rfc string, opts ...RunOption) (*Record, error) {
	rfc = strings.TrimSpace(rfc)
	if rfc == "" {
		return nil, &ValidationError{Op: "customer.find", Msg: "rfc cannot be blank"}
	}

	class, err := s.classURL(consts.SegmentClients, APIVersionCustomers)
	if err != nil {
		return nil, err
	}

	ro := collectRunOptions(opts)
	envelope, err := s.request("customer.find", http.MethodGet, class+"/"+url.PathEscape(rfc), "", nil, ro)
	if err != nil || envelope == nil {
		return nil, err
	}
	return customerFromEnvelope("customer.find", envelope)
}

// Update rewrites an existing customer's fields.
// Under the hood: POST /api/v1/clients/<uid>/update.
func (s *CustomerService) Update(uid string, params Params, opts ...RunOption) (*Record, error) {
	if uid == "" {
		return nil, &ValidationError{Op: "customer.update", Msg: "uid is required"}
	}

	instance, err := s.instanceURL(consts.SegmentClients, APIVersionCustomers, uid)
	if err != nil {
		return nil, err
	}

	ro := collectRunOptions(opts)
	envelope, err := s.request("customer.update", http.MethodPost, instance+consts.PathUpdate, uid, params, ro)
	if err != nil || envelope == nil {
		return nil, err
	}
	return customerFromEnvelope("customer.update", envelope)
}

// customerFromEnvelope hydrates one customer record from the data payload.
func customerFromEnvelope(op string, envelope map[string]any) (*Record, error) {
	data, ok := envelopeData(envelope)
	if !ok {
		return nil, &UnexpectedResponseError{Op: op, Msg: "envelope has no data field"}
	}
	return hydrateOne(op, data)
}
