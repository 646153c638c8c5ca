package ai

import "fmt"

// ModelTier maps a tier key to the backend model that serves it.
// DailyLimit is the provider's advertised request quota; it is informational
// and not enforced anywhere in this service.
type ModelTier struct {
	Key         TierKey `json:"key"`
	BackendName string  `json:"name"`
	DisplayName string  `json:"displayName"`
	DailyLimit  int     `json:"dailyLimit"`
}

// Registry is the process-wide tier table. It is built once at startup,
// injected into whatever needs it, and read-only afterwards.
type Registry struct {
	tiers map[TierKey]ModelTier
	order []TierKey
}

// NewRegistry returns the static three-tier registry.
func NewRegistry() *Registry {
	r := &Registry{tiers: make(map[TierKey]ModelTier)}
	for _, tier := range []ModelTier{
		{
			Key:         TierQuick,
			BackendName: "llama-3.1-8b-instant",
			DisplayName: "Quick Response",
			DailyLimit:  14400,
		},
		{
			Key:         TierClinical,
			BackendName: "llama-3.3-70b-versatile",
			DisplayName: "Clinical Expert",
			DailyLimit:  1000,
		},
		{
			Key:         TierReasoning,
			BackendName: "llama3-groq-70b-8192-tool-use-preview",
			DisplayName: "Advanced Reasoning",
			DailyLimit:  1000,
		},
	} {
		r.tiers[tier.Key] = tier
		r.order = append(r.order, tier.Key)
	}
	return r
}

// Lookup resolves a tier key to its model entry.
func (r *Registry) Lookup(key TierKey) (ModelTier, error) {
	tier, ok := r.tiers[key]
	if !ok {
		return ModelTier{}, fmt.Errorf("unknown model tier: %q", key)
	}
	return tier, nil
}

// ReverseLookup finds the tier key serving the given backend model name.
func (r *Registry) ReverseLookup(backendName string) (TierKey, bool) {
	for _, key := range r.order {
		if r.tiers[key].BackendName == backendName {
			return key, true
		}
	}
	return "", false
}

// Tiers returns all entries in registration order.
func (r *Registry) Tiers() []ModelTier {
	out := make([]ModelTier, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.tiers[key])
	}
	return out
}
