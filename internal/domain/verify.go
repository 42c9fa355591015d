package domain

import "strings"

// VerifyProposal re-checks every claim in an oracle proposal against the
// full roster and returns a corrected recommendation. It never fails:
// unsupported claims are dropped field by field. Inputs are not mutated.
//
// Verification compares trimmed product display names (case-sensitive),
// a separate axis from the code matching used by the eligibility filter.
func VerifyProposal(p Proposal, order Order, roster []Partner) Recommendation {
	requested := order.RequestedNames()
	byID := make(map[string]Partner, len(roster))
	for _, partner := range roster {
		byID[partner.PartnerID] = partner
	}

	rec := Recommendation{Summary: p.Summary}

	// Best partner: reject, never repair.
	if p.BestPartner != nil {
		if partner, ok := byID[p.BestPartner.PartnerID]; ok && offersAll(partner, requested) {
			ref := *p.BestPartner
			rec.BestPartner = &ref
		}
	}

	// Alternatives are filtered down silently.
	for _, alt := range p.Alternatives {
		partner, ok := byID[alt.PartnerID]
		if !ok || !offersAll(partner, requested) {
			continue
		}
		rec.Alternatives = append(rec.Alternatives, alt)
	}

	// A split plan is kept only when the claimed legs jointly cover the
	// whole order; an incomplete split is dropped outright, not trimmed.
	// Claimed product names are taken at face value here, there is no
	// per-leg catalog cross-check.
	if len(p.SplitDelivery) > 0 && splitCoversAll(p.SplitDelivery, requested) {
		rec.SplitDelivery = append([]SplitPart(nil), p.SplitDelivery...)
	}

	// A single partner covering the full order always wins over a split.
	if rec.BestPartner != nil {
		rec.SplitDelivery = nil
	}

	return rec
}

func offersAll(p Partner, requested map[string]struct{}) bool {
	offered := p.OfferedNames()
	for name := range requested {
		if _, ok := offered[name]; !ok {
			return false
		}
	}
	return true
}

func splitCoversAll(parts []SplitPart, requested map[string]struct{}) bool {
	claimed := make(map[string]struct{})
	for _, part := range parts {
		for _, name := range part.FulfilledProducts {
			if n := strings.TrimSpace(name); n != "" {
				claimed[n] = struct{}{}
			}
		}
	}
	for name := range requested {
		if _, ok := claimed[name]; !ok {
			return false
		}
	}
	return true
}
