package domain

// FilterPolicy selects how much the eligibility filter pre-checks before
// the oracle sees the candidates.
type FilterPolicy string

const (
	// PolicyStrict requires state match, contracted payor status and full
	// product coverage.
	PolicyStrict FilterPolicy = "strict"
	// PolicyRosterOnly requires state match and contracted payor status;
	// product coverage is left to the oracle and the verifier.
	PolicyRosterOnly FilterPolicy = "roster-only"
)

// Skip reasons passed to the diagnostic callback.
const (
	SkipStateMismatch   = "state mismatch"
	SkipNotContracted   = "not contracted"
	SkipMissingProducts = "missing products"
)

// EligiblePartners narrows the roster to candidates for the order. Excluded
// partners are reported through skip (may be nil); exclusion is diagnostic,
// not an error.
func EligiblePartners(order Order, roster []Partner, policy FilterPolicy, skip func(Partner, string)) []Partner {
	if skip == nil {
		skip = func(Partner, string) {}
	}
	state := order.DeliveryState()
	var eligible []Partner
	for _, p := range roster {
		if p.State != state {
			skip(p, SkipStateMismatch)
			continue
		}
		if !p.ContractedPayor {
			skip(p, SkipNotContracted)
			continue
		}
		if policy == PolicyStrict && !FulfillsAll(order.Products, p.Catalog) {
			skip(p, SkipMissingProducts)
			continue
		}
		eligible = append(eligible, p)
	}
	return eligible
}
