package oracle

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/dme-recommend-service/internal/domain"
)

func TestBuildPrompt(t *testing.T) {
	order := domain.Order{
		OrderUID: "ord-9",
		Practice: domain.PracticeDetails{Address: domain.Address{State: "TX"}},
		Products: []domain.RequestedProduct{{ProductName: "Wheelchair", HCPCSCode: "E0100"}},
	}
	candidates := []domain.Partner{
		{PartnerID: "p1", PartnerName: "Acme Medical", State: "TX", ContractedPayor: true},
		{PartnerID: "p2", PartnerName: "Bolt Supplies", State: "TX", ContractedPayor: true},
	}

	prompt, err := BuildPrompt(order, candidates)
	require.NoError(t, err)

	// order and candidates are embedded as JSON
	assert.Contains(t, prompt, `"order_uid": "ord-9"`)
	assert.Contains(t, prompt, `"hcpcs_code": "E0100"`)
	assert.Contains(t, prompt, `"partner_id": "p1"`)
	assert.Contains(t, prompt, "Bolt Supplies")

	// the expected answer shape is spelled out for the model
	assert.Contains(t, prompt, `"best_partner"`)
	assert.Contains(t, prompt, `"split_delivery"`)
	assert.Contains(t, prompt, `"fulfilled_products"`)
}

func TestBuildPromptEmptyCandidates(t *testing.T) {
	prompt, err := BuildPrompt(domain.Order{OrderUID: "ord-1"}, nil)
	require.NoError(t, err)
	assert.Contains(t, prompt, "null")
}

func TestNewGeminiOracleRequiresKey(t *testing.T) {
	_, err := NewGeminiOracle(t.Context(), Config{}, zerolog.Nop())
	assert.Error(t, err)
}
