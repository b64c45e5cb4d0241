package go_facturacom

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateCustomer(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/v1/clients/create" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}

				body, _ := io.ReadAll(r.Body)
				var decoded map[string]any
				if err := json.Unmarshal(body, &decoded); err != nil {
					t.Errorf("body is not JSON: %v", err)
				}
				if decoded["name"] != "Acme" {
					t.Errorf("body mismatch: %#v", decoded)
				}

				_, _ = w.Write([]byte(`{"status":"success","data":{"UID":"123","Name":"Acme"}}`))
			},
		),
	)
	defer server.Close()

	client := newTestClient(server.URL)
	record, err := client.Customers().Create(Params{"name": "Acme"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if record.UID() != "123" {
		t.Fatalf("uid mismatch: %q", record.UID())
	}
	if got := record.GetString("name"); got != "Acme" {
		t.Fatalf("name mismatch: %q", got)
	}
}

func TestCreateCustomerAcceptsCapitalizedData(t *testing.T) {
	// The clients create endpoint historically replies "Data".
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"status":"success","Data":{"UID":"456","RFC":"XAXX010101000"}}`))
			},
		),
	)
	defer server.Close()

	client := newTestClient(server.URL)
	record, err := client.Customers().Create(Params{"rfc": "XAXX010101000"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if record.UID() != "456" {
		t.Fatalf("uid mismatch: %q", record.UID())
	}
	if got := record.GetString("rfc"); got != "XAXX010101000" {
		t.Fatalf("rfc mismatch: %q", got)
	}
}

func TestListCustomers(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/v1/clients" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				if r.Method != http.MethodGet {
					t.Errorf("expected GET, got %s", r.Method)
				}
				_, _ = w.Write([]byte(successEnvelope(`[{"UID":"1"},{"UID":"2"}]`)))
			},
		),
	)
	defer server.Close()

	client := newTestClient(server.URL)
	records, err := client.Customers().List(nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 2 || records[0].UID() != "1" || records[1].UID() != "2" {
		t.Fatalf("unexpected records: %v", records)
	}
}

func TestFindCustomer(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/v1/clients/XAXX010101000" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				_, _ = w.Write([]byte(`{"status":"success","data":{"UID":"789","RFC":"XAXX010101000"}}`))
			},
		),
	)
	defer server.Close()

	client := newTestClient(server.URL)
	record, err := client.Customers().Find("XAXX010101000")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if record.UID() != "789" {
		t.Fatalf("uid mismatch: %q", record.UID())
	}
}

func TestFindCustomerValidatesRFC(t *testing.T) {
	client := NewClient(WithMode(ModeSandbox))

	for _, rfc := range []string{"", "   "} {
		_, err := client.Customers().Find(rfc)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation for rfc %q, got %v", rfc, err)
		}
	}
}

func TestUpdateCustomer(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotMethod = r.Method
				_, _ = w.Write([]byte(`{"status":"success","Data":{"UID":"123","Name":"Acme Renamed"}}`))
			},
		),
	)
	defer server.Close()

	client := newTestClient(server.URL)
	record, err := client.Customers().Update("123", Params{"name": "Acme Renamed"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("expected POST, got %s", gotMethod)
	}
	if gotPath != "/api/v1/clients/123/update" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if got := record.GetString("name"); got != "Acme Renamed" {
		t.Fatalf("name mismatch: %q", got)
	}
}

func TestUpdateCustomerRequiresUID(t *testing.T) {
	client := NewClient(WithMode(ModeSandbox))

	_, err := client.Customers().Update("", Params{"name": "Acme"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
