package intelligence

import "github.com/scoutline/leadscout/internal/model"

// intentBuckets are evaluated in order; the first bucket with a keyword hit
// wins, so HIRING phrasing beats a stray benchmark word later in the query.
var intentBuckets = []struct {
	intent   string
	keywords []string
}{
	{model.IntentHiring, []string{"find", "hire", "need", "looking", "recruit", "urgent", "urgently", "want"}},
	{model.IntentSalary, []string{"salary", "ctc", "pay", "compensation", "package"}},
	{model.IntentResearch, []string{"market", "trend", "how many", "availability", "pool"}},
	{model.IntentBenchmark, []string{"compare", "benchmark", "vs", "versus"}},
}

func classifyIntent(p parsedQuery) string {
	for _, bucket := range intentBuckets {
		for _, kw := range bucket.keywords {
			if p.contains(kw) {
				return bucket.intent
			}
		}
	}
	return model.IntentGeneral
}
