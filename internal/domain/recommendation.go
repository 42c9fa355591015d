package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PartnerRef is a partner claim inside a proposal: who, and why they were
// picked.
type PartnerRef struct {
	PartnerID   string `json:"partner_id"`
	PartnerName string `json:"partner_name"`
	Summary     string `json:"summary,omitempty"`
}

// SplitPart is one leg of a split-delivery plan.
type SplitPart struct {
	PartnerID         string   `json:"partner_id"`
	PartnerName       string   `json:"partner_name"`
	FulfilledProducts []string `json:"fulfilled_products"`
}

// Proposal is the oracle's raw recommendation. It is untrusted: it may name
// partners that do not exist or claim coverage the catalogs do not back.
type Proposal struct {
	BestPartner   *PartnerRef  `json:"best_partner,omitempty"`
	Alternatives  []PartnerRef `json:"alternatives,omitempty"`
	SplitDelivery []SplitPart  `json:"split_delivery,omitempty"`
	Summary       string       `json:"summary,omitempty"`
}

// Recommendation is a proposal after verification: every partner reference
// exists in the roster and backs the claims attributed to it.
type Recommendation struct {
	BestPartner   *PartnerRef  `json:"best_partner,omitempty"`
	Alternatives  []PartnerRef `json:"alternatives,omitempty"`
	SplitDelivery []SplitPart  `json:"split_delivery,omitempty"`
	Summary       string       `json:"summary,omitempty"`
}

// ParseProposal decodes raw oracle output into a Proposal. Models tend to
// wrap JSON in markdown code fences, so those are stripped first. Anything
// that still fails to decode is ErrMalformedProposal.
func ParseProposal(raw []byte) (Proposal, error) {
	text := stripCodeFence(string(raw))
	var p Proposal
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return Proposal{}, fmt.Errorf("%w: %v", ErrMalformedProposal, err)
	}
	return p, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.Trim(s, "`")
	s = strings.TrimSpace(s)
	for _, lang := range []string{"json\r\n", "json\n", "json "} {
		if strings.HasPrefix(s, lang) {
			return strings.TrimSpace(s[len(lang):])
		}
	}
	return s
}
