package domain

import "strings"

// Matches reports whether a catalog entry can supply a requested product.
// A match requires equal HCPCS codes or equal protocol-step-options,
// compared after trimming whitespace and folding case. A blank field on
// either side never matches, even against another blank field.
func Matches(req RequestedProduct, entry CatalogEntry) bool {
	if codeEqual(req.HCPCSCode, entry.HCPCSCode) {
		return true
	}
	return codeEqual(req.ProtocolStepOption, entry.ProtocolStepOption)
}

func codeEqual(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}

// Covered reports whether any catalog entry matches the requested product.
func Covered(req RequestedProduct, catalog []CatalogEntry) bool {
	for _, e := range catalog {
		if Matches(req, e) {
			return true
		}
	}
	return false
}

// FulfillsAll reports whether the catalog covers every requested product.
func FulfillsAll(products []RequestedProduct, catalog []CatalogEntry) bool {
	for _, p := range products {
		if !Covered(p, catalog) {
			return false
		}
	}
	return true
}
