package go_facturacom

import "testing"

func TestHydrationLowercasesKeys(t *testing.T) {
	record := NewRecord(map[string]any{"ID": 5, "Name": "Acme"})

	id, ok := record.Get("id")
	if !ok || id != 5 {
		t.Fatalf("id mismatch: got %v (present=%t)", id, ok)
	}
	if got := record.GetString("name"); got != "Acme" {
		t.Fatalf("name mismatch: got %q", got)
	}
	if record.ID() != 5 {
		t.Fatalf("ID() mismatch: got %v", record.ID())
	}
	if record.UID() != "" {
		t.Fatalf("expected empty uid, got %q", record.UID())
	}

	// Lookups are case-insensitive too.
	if got := record.GetString("NAME"); got != "Acme" {
		t.Fatalf("case-insensitive lookup failed: got %q", got)
	}
}

func TestRefreshWipesStaleFields(t *testing.T) {
	record := NewRecord(map[string]any{"UID": "A1", "extra": "keepsake"})
	if got := record.GetString("extra"); got != "keepsake" {
		t.Fatalf("extra mismatch before refresh: %q", got)
	}

	record.Refresh(map[string]any{"UID": "A1"})

	value, present := record.Get("extra")
	if !present {
		t.Fatalf("wiped field should stay present with a nil value")
	}
	if value != nil {
		t.Fatalf("expected nil after refresh, got %v", value)
	}
	if record.UID() != "A1" {
		t.Fatalf("uid must survive refresh, got %q", record.UID())
	}
}

func TestNestedObjectsAreWrapped(t *testing.T) {
	record := NewRecord(
		map[string]any{
			"UID": "A1",
			"Address": map[string]any{
				"City": "CDMX",
				"GEO":  map[string]any{"Lat": 19.4},
			},
		},
	)

	address, ok := record.GetRecord("address")
	if !ok || address == nil {
		t.Fatalf("address should hydrate as a nested record")
	}
	if got := address.GetString("city"); got != "CDMX" {
		t.Fatalf("nested city mismatch: %q", got)
	}

	geo, ok := address.GetRecord("geo")
	if !ok || geo == nil {
		t.Fatalf("geo should hydrate as a nested record")
	}
	if lat, _ := geo.Get("lat"); lat != 19.4 {
		t.Fatalf("nested lat mismatch: %v", lat)
	}

	if address.Parent() != record {
		t.Fatalf("address parent must point at the outer record")
	}
	if geo.Parent() != address {
		t.Fatalf("geo parent must point at the address record")
	}
}

func TestParentSurvivesRefresh(t *testing.T) {
	record := NewRecord(map[string]any{"Address": map[string]any{"City": "CDMX"}})
	address, _ := record.GetRecord("address")

	address.Refresh(map[string]any{"Street": "Reforma"})

	if address.Parent() != record {
		t.Fatalf("parent must survive refresh")
	}
	if got := address.GetString("street"); got != "Reforma" {
		t.Fatalf("street mismatch after refresh: %q", got)
	}
	if city, present := address.Get("city"); !present || city != nil {
		t.Fatalf("city should be wiped to nil, got %v (present=%t)", city, present)
	}
}

func TestSetNormalizesAndWraps(t *testing.T) {
	record := NewRecord(nil)
	record.Set("Receptor", Params{"RFC": "XAXX010101000"})

	receptor, ok := record.GetRecord("receptor")
	if !ok {
		t.Fatalf("receptor should be a nested record")
	}
	if got := receptor.GetString("rfc"); got != "XAXX010101000" {
		t.Fatalf("rfc mismatch: %q", got)
	}
}

func TestFieldsReturnsCopy(t *testing.T) {
	record := NewRecord(map[string]any{"uid": "A1"})

	fields := record.Fields()
	fields["uid"] = "mutated"

	if record.UID() != "A1" {
		t.Fatalf("Fields() must not expose internal state, uid became %q", record.UID())
	}
	if record.Len() != 1 {
		t.Fatalf("length mismatch: %d", record.Len())
	}
}
