package domain

import "strings"

// Order is an incoming medical order for DME supplies.
type Order struct {
	OrderUID string             `json:"order_uid"`
	Practice PracticeDetails    `json:"practice_details"`
	Products []RequestedProduct `json:"products"`
}

type PracticeDetails struct {
	Name    string  `json:"practice_name,omitempty"`
	Address Address `json:"address"`
}

type Address struct {
	Line  string `json:"address_line,omitempty"`
	City  string `json:"address_city,omitempty"`
	State string `json:"address_state"`
	Zip   string `json:"address_zip,omitempty"`
}

// RequestedProduct is one ordered item. HCPCSCode and ProtocolStepOption
// are optional; either one can identify the product against a catalog.
type RequestedProduct struct {
	ProductName        string `json:"product_name"`
	HCPCSCode          string `json:"hcpcs_code,omitempty"`
	ProtocolStepOption string `json:"protocol_step_option,omitempty"`
}

// DeliveryState returns the state the order ships to.
func (o Order) DeliveryState() string {
	return o.Practice.Address.State
}

// RequestedNames returns the trimmed display names of all ordered products.
// Name equality is case-sensitive here; catalog matching by code goes
// through Matches instead.
func (o Order) RequestedNames() map[string]struct{} {
	names := make(map[string]struct{}, len(o.Products))
	for _, p := range o.Products {
		if n := strings.TrimSpace(p.ProductName); n != "" {
			names[n] = struct{}{}
		}
	}
	return names
}
