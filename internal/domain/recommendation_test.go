package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProposalPlainJSON(t *testing.T) {
	raw := []byte(`{"best_partner":{"partner_id":"p1","partner_name":"Acme","summary":"best fit"},"summary":"done"}`)

	p, err := ParseProposal(raw)

	require.NoError(t, err)
	require.NotNil(t, p.BestPartner)
	assert.Equal(t, "p1", p.BestPartner.PartnerID)
	assert.Equal(t, "done", p.Summary)
}

func TestParseProposalStripsMarkdownFence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"json fence", "```json\n{\"summary\":\"ok\"}\n```"},
		{"bare fence", "```\n{\"summary\":\"ok\"}\n```"},
		{"crlf fence", "```json\r\n{\"summary\":\"ok\"}\r\n```"},
		{"surrounding whitespace", "  \n```json\n{\"summary\":\"ok\"}\n```\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseProposal([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, "ok", p.Summary)
		})
	}
}

func TestParseProposalMalformed(t *testing.T) {
	for _, raw := range []string{"", "not json at all", "```json\nstill not json\n```", "{\"alternatives\": 5}"} {
		_, err := ParseProposal([]byte(raw))
		assert.True(t, errors.Is(err, ErrMalformedProposal), "input %q: got %v", raw, err)
	}
}

func TestParseProposalSplitDelivery(t *testing.T) {
	raw := []byte(`{
  "split_delivery": [
    {"partner_id": "p1", "partner_name": "Acme", "fulfilled_products": ["Wheelchair"]},
    {"partner_id": "p2", "partner_name": "Bolt", "fulfilled_products": ["Nebulizer", "Mask"]}
  ]
}`)

	p, err := ParseProposal(raw)

	require.NoError(t, err)
	require.Len(t, p.SplitDelivery, 2)
	assert.Equal(t, []string{"Nebulizer", "Mask"}, p.SplitDelivery[1].FulfilledProducts)
	assert.Nil(t, p.BestPartner)
}
