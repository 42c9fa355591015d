package domain

import "strings"

// Partner is a DME supplier from the static roster. Read-only during a
// request.
type Partner struct {
	PartnerID          string         `json:"partner_id"`
	PartnerName        string         `json:"partner_name"`
	State              string         `json:"state"`
	ContractedPayor    bool           `json:"contracted_payor_status"`
	Rating             float64        `json:"partner_rating"`
	DeliverySatisfRate float64        `json:"previous_delivery_satisfaction_rating"`
	Catalog            []CatalogEntry `json:"product_catalog"`
}

// CatalogEntry is one product a partner can supply.
type CatalogEntry struct {
	ProductName        string `json:"product_name"`
	HCPCSCode          string `json:"hcpcs_code,omitempty"`
	ProtocolStepOption string `json:"protocol_step_option,omitempty"`
}

// OfferedNames returns the trimmed display names of everything in the
// partner's catalog.
func (p Partner) OfferedNames() map[string]struct{} {
	names := make(map[string]struct{}, len(p.Catalog))
	for _, e := range p.Catalog {
		if n := strings.TrimSpace(e.ProductName); n != "" {
			names[n] = struct{}{}
		}
	}
	return names
}
