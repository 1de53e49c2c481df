// Package paging replays page reference strings against a fixed number of
// physical frames and reports, for every reference, whether it hit or
// faulted and what the frames held afterwards.
package paging

import (
	"fmt"
	"strings"
)

// PageID identifies a virtual page. Valid ids are in [0, maxPages).
type PageID int

// Policy selects the page-replacement algorithm of a run.
type Policy int

// The supported replacement policies.
const (
	PolicyFIFO Policy = iota
	PolicyLRU
	PolicyMRU
	PolicyOptimal
)

var policyNames = map[Policy]string{
	PolicyFIFO:    "FIFO",
	PolicyLRU:     "LRU",
	PolicyMRU:     "MRU",
	PolicyOptimal: "OPTIMAL",
}

// AllPolicies returns every supported policy in a fixed order.
func AllPolicies() []Policy {
	return []Policy{PolicyFIFO, PolicyLRU, PolicyMRU, PolicyOptimal}
}

func (p Policy) String() string {
	name, ok := policyNames[p]
	if !ok {
		return fmt.Sprintf("Policy(%d)", int(p))
	}

	return name
}

// IsValid tells if the policy is one of the supported ones.
func (p Policy) IsValid() bool {
	_, ok := policyNames[p]
	return ok
}

// ParsePolicy converts a policy name into a Policy. Names are matched
// case-insensitively and "OPT" is accepted for OPTIMAL.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "FIFO":
		return PolicyFIFO, nil
	case "LRU":
		return PolicyLRU, nil
	case "MRU":
		return PolicyMRU, nil
	case "OPTIMAL", "OPT":
		return PolicyOptimal, nil
	}

	return 0, &ConfigurationError{
		Field:  "algorithm",
		Value:  name,
		Reason: "must be one of FIFO, LRU, MRU, OPTIMAL",
	}
}

// MarshalText encodes the policy by name.
func (p Policy) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, &ConfigurationError{
			Field:  "algorithm",
			Value:  int(p),
			Reason: "is not a known policy",
		}
	}

	return []byte(p.String()), nil
}

// UnmarshalText decodes a policy name.
func (p *Policy) UnmarshalText(text []byte) error {
	policy, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}

	*p = policy

	return nil
}
