package ai

import "testing"

func TestRegistryLookup(t *testing.T) {
	registry := NewRegistry()

	tier, err := registry.Lookup(TierClinical)
	if err != nil {
		t.Fatalf("lookup clinical: %v", err)
	}
	if tier.BackendName != "llama-3.3-70b-versatile" {
		t.Fatalf("clinical backend = %q", tier.BackendName)
	}
	if tier.DisplayName != "Clinical Expert" {
		t.Fatalf("clinical display name = %q", tier.DisplayName)
	}

	if _, err := registry.Lookup("research"); err == nil {
		t.Fatal("expected error for retired tier key")
	}
}

func TestRegistryTiersAreUnique(t *testing.T) {
	registry := NewRegistry()
	tiers := registry.Tiers()
	if len(tiers) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(tiers))
	}
	backends := make(map[string]TierKey)
	for _, tier := range tiers {
		if prev, dup := backends[tier.BackendName]; dup {
			t.Fatalf("backend %q mapped by both %q and %q", tier.BackendName, prev, tier.Key)
		}
		backends[tier.BackendName] = tier.Key
	}
}

func TestRegistryReverseLookup(t *testing.T) {
	registry := NewRegistry()
	for _, tier := range registry.Tiers() {
		key, ok := registry.ReverseLookup(tier.BackendName)
		if !ok || key != tier.Key {
			t.Fatalf("reverse lookup %q = (%q, %v)", tier.BackendName, key, ok)
		}
	}
	if _, ok := registry.ReverseLookup("gpt-4o"); ok {
		t.Fatal("reverse lookup of unknown backend should miss")
	}
}
