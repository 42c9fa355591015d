package oracle

import (
	"encoding/json"
	"strings"
	"text/template"

	"github.com/example/dme-recommend-service/internal/domain"
)

// Selection prompt. The model is told to answer in the proposal JSON shape;
// the verifier downstream treats that answer as untrusted either way.
const promptText = `You are a DME logistics expert. Given the medical order and the list of DME partners,
evaluate each partner and produce an output.

Selection Logic:
- The best partner must be able to fulfill all the requested products; if none can, don't recommend a best partner.
- Even if there is a best partner, suggest alternatives if available.
- Use partner_rating, previous_delivery_satisfaction_rating, and contract quality as tie-breakers.
- If no single partner can fulfill all products, provide a 'split_delivery': a set of partners that collectively fulfill the full order.

Output Format:
Respond ONLY in JSON with the following format:

{
  "best_partner": {
    "partner_id": "<ID>",
    "partner_name": "<Name>",
    "summary": "<Short explanation of the selection made>"
  },
  "alternatives": [
    {
      "partner_id": "<ID>",
      "partner_name": "<Name>",
      "summary": "<Short explanation of the selection made>"
    }
  ],
  "split_delivery": [
    {
      "partner_id": "<ID>",
      "partner_name": "<Name>",
      "fulfilled_products": ["<Product Name 1>", "<Product Name 2>"]
    }
  ],
  "summary": "<Short explanation of the selection made>"
}

Instructions:
- "summary" should be a one-line explanation describing why the selected partner (or set) was chosen.
- "best_partner" must fulfill all requested products.
- "alternatives" are backup partners that also fulfill all products but scored lower.
- Only include "split_delivery" if no single partner can fulfill the entire order; list the product names each can provide.
- All output must be strictly in JSON format. Do not explain outside the JSON block.

Medical Order:
{{.Order}}

DME Partners:
{{.Partners}}
`

var promptTmpl = template.Must(template.New("selection").Parse(promptText))

// BuildPrompt renders the selection prompt with the order and candidate
// partners embedded as indented JSON.
func BuildPrompt(order domain.Order, candidates []domain.Partner) (string, error) {
	orderJSON, err := json.MarshalIndent(order, "", "  ")
	if err != nil {
		return "", err
	}
	partnersJSON, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return "", err
	}
	var b strings.Builder
	err = promptTmpl.Execute(&b, struct {
		Order    string
		Partners string
	}{string(orderJSON), string(partnersJSON)})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
