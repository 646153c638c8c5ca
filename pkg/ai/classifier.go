package ai

import "strings"

// TierKey identifies a model tier in the registry.
type TierKey string

const (
	TierQuick     TierKey = "quick"
	TierClinical  TierKey = "clinical"
	TierReasoning TierKey = "reasoning"
)

// classifyRule pairs a keyword set with the tier it selects.
type classifyRule struct {
	tier     TierKey
	keywords []string
}

// classifyRules are evaluated in order and the first keyword hit wins.
// Clinical terms outrank reasoning terms on purpose: "why does this injury
// cause pain" must stay clinical even though "why" is a reasoning keyword.
var classifyRules = []classifyRule{
	{
		tier: TierClinical,
		keywords: []string{
			"treatment", "diagnosis", "symptom", "pain", "injury", "rehabilitation",
		},
	},
	{
		tier: TierReasoning,
		keywords: []string{
			"latest", "recent", "study", "research", "evidence", "findings",
			"literature", "systematic review", "meta-analysis", "clinical trial",
			"why", "how does", "explain", "analyze", "compare", "relationship",
		},
	},
}

// Classify maps a free-text question to a model tier by case-insensitive
// substring matching. Input with no recognized keyword, including the empty
// string, falls through to the quick tier.
func Classify(question string) TierKey {
	lower := strings.ToLower(question)
	for _, rule := range classifyRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.tier
			}
		}
	}
	return TierQuick
}
