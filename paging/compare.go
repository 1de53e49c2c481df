package paging

import (
	"fmt"
	"sync"
)

// Summary holds the totals of one policy in a comparison.
type Summary struct {
	Policy   Policy  `json:"algorithm"`
	Hits     int     `json:"hits"`
	Faults   int     `json:"faults"`
	HitRatio float64 `json:"hitRatio"`
}

// Compare replays the same sequence under every policy. The runs execute
// concurrently; each owns its own simulator. Summaries come back in
// AllPolicies order.
func Compare(sequence []PageID, ramSize, maxPages int) ([]Summary, error) {
	err := Validate(Request{
		Sequence: sequence,
		RAMSize:  ramSize,
		MaxPages: maxPages,
	})
	if err != nil {
		return nil, err
	}

	policies := AllPolicies()
	summaries := make([]Summary, len(policies))

	var wg sync.WaitGroup
	for i, policy := range policies {
		wg.Add(1)

		go func(i int, policy Policy) {
			defer wg.Done()

			result, err := Simulate(Request{
				Sequence:  sequence,
				RAMSize:   ramSize,
				MaxPages:  maxPages,
				Algorithm: policy,
			})
			if err != nil {
				panic(fmt.Sprintf("validated request failed: %v", err))
			}

			summaries[i] = Summary{
				Policy:   policy,
				Hits:     result.Hits,
				Faults:   result.Faults,
				HitRatio: result.HitRatio(),
			}
		}(i, policy)
	}

	wg.Wait()

	return summaries, nil
}
