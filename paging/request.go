package paging

// Request is the input of one simulation run.
type Request struct {
	Sequence  []PageID `json:"sequence"`
	RAMSize   int      `json:"ramSize"`
	MaxPages  int      `json:"maxPages"`
	Algorithm Policy   `json:"algorithm"`
}

// Validate checks a request before it is simulated. Configuration problems
// are reported first, then an empty sequence, then out-of-range pages.
func Validate(req Request) error {
	if req.RAMSize < 1 {
		return &ConfigurationError{
			Field:  "ramSize",
			Value:  req.RAMSize,
			Reason: "must be at least 1",
		}
	}

	if req.MaxPages < 1 {
		return &ConfigurationError{
			Field:  "maxPages",
			Value:  req.MaxPages,
			Reason: "must be at least 1",
		}
	}

	if !req.Algorithm.IsValid() {
		return &ConfigurationError{
			Field:  "algorithm",
			Value:  int(req.Algorithm),
			Reason: "is not a known policy",
		}
	}

	if len(req.Sequence) == 0 {
		return ErrEmptySequence
	}

	var outOfRange []PageID
	for _, p := range req.Sequence {
		if p < 0 || int(p) >= req.MaxPages {
			outOfRange = append(outOfRange, p)
		}
	}

	if len(outOfRange) > 0 {
		return &PageOutOfRangeError{
			Pages:    outOfRange,
			MaxPages: req.MaxPages,
		}
	}

	return nil
}
