package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testOrder() Order {
	return Order{
		OrderUID: "ord-1",
		Practice: PracticeDetails{Address: Address{State: "TX"}},
		Products: []RequestedProduct{
			{ProductName: "Wheelchair", HCPCSCode: "E0100"},
			{ProductName: "Nebulizer", ProtocolStepOption: "step-2"},
		},
	}
}

func fullCatalog() []CatalogEntry {
	return []CatalogEntry{
		{ProductName: "Wheelchair", HCPCSCode: "E0100"},
		{ProductName: "Nebulizer", ProtocolStepOption: "step-2"},
	}
}

func TestEligiblePartnersStrict(t *testing.T) {
	order := testOrder()
	roster := []Partner{
		{PartnerID: "p1", PartnerName: "Full Cover", State: "TX", ContractedPayor: true, Catalog: fullCatalog()},
		{PartnerID: "p2", PartnerName: "Wrong State", State: "CA", ContractedPayor: true, Catalog: fullCatalog()},
		{PartnerID: "p3", PartnerName: "No Contract", State: "TX", ContractedPayor: false, Catalog: fullCatalog()},
		{PartnerID: "p4", PartnerName: "Partial", State: "TX", ContractedPayor: true, Catalog: fullCatalog()[:1]},
	}

	skipped := map[string]string{}
	got := EligiblePartners(order, roster, PolicyStrict, func(p Partner, reason string) {
		skipped[p.PartnerID] = reason
	})

	if assert.Len(t, got, 1) {
		assert.Equal(t, "p1", got[0].PartnerID)
	}
	assert.Equal(t, map[string]string{
		"p2": SkipStateMismatch,
		"p3": SkipNotContracted,
		"p4": SkipMissingProducts,
	}, skipped)
}

func TestEligiblePartnersRosterOnly(t *testing.T) {
	order := testOrder()
	roster := []Partner{
		{PartnerID: "p1", State: "TX", ContractedPayor: true, Catalog: fullCatalog()},
		{PartnerID: "p4", State: "TX", ContractedPayor: true, Catalog: fullCatalog()[:1]},
		{PartnerID: "p2", State: "CA", ContractedPayor: true, Catalog: fullCatalog()},
	}

	got := EligiblePartners(order, roster, PolicyRosterOnly, nil)

	ids := make([]string, len(got))
	for i, p := range got {
		ids[i] = p.PartnerID
	}
	// product coverage not pre-filtered under roster-only
	assert.Equal(t, []string{"p1", "p4"}, ids)
}

func TestStrictIsSubsetOfRosterOnly(t *testing.T) {
	order := testOrder()
	roster := []Partner{
		{PartnerID: "p1", State: "TX", ContractedPayor: true, Catalog: fullCatalog()},
		{PartnerID: "p4", State: "TX", ContractedPayor: true},
		{PartnerID: "p5", State: "TX", ContractedPayor: false},
	}

	rosterOnly := map[string]bool{}
	for _, p := range EligiblePartners(order, roster, PolicyRosterOnly, nil) {
		rosterOnly[p.PartnerID] = true
	}
	for _, p := range EligiblePartners(order, roster, PolicyStrict, nil) {
		assert.True(t, rosterOnly[p.PartnerID], "strict candidate %s missing under roster-only", p.PartnerID)
	}
}

func TestEligiblePartnersEmpty(t *testing.T) {
	got := EligiblePartners(testOrder(), nil, PolicyStrict, nil)
	assert.Empty(t, got)
}
