package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/example/dme-recommend-service/internal/domain"
)

// LoadRoster warms the roster cache from the repository at startup.
type LoadRoster struct {
	Repo  domain.PartnerRepository
	Cache domain.RosterCache
}

func (uc LoadRoster) Execute(ctx context.Context) error {
	return uc.Repo.LoadAll(ctx, func(p domain.Partner) error {
		uc.Cache.Put(p)
		return nil
	})
}

// RecommendForOrder runs the full pipeline for one order: eligibility
// filter, oracle proposal, verification, persistence.
type RecommendForOrder struct {
	Roster domain.RosterCache
	Oracle domain.RecommendationOracle
	Store  domain.RecommendationStore
	Policy domain.FilterPolicy
	Log    zerolog.Logger
}

func (uc RecommendForOrder) Execute(ctx context.Context, order domain.Order) (domain.Recommendation, error) {
	if len(order.Products) == 0 {
		return domain.Recommendation{}, domain.ErrValidation
	}

	roster := uc.Roster.All()
	candidates := domain.EligiblePartners(order, roster, uc.Policy, func(p domain.Partner, reason string) {
		uc.Log.Debug().
			Str("order_uid", order.OrderUID).
			Str("partner_id", p.PartnerID).
			Str("partner_name", p.PartnerName).
			Str("reason", reason).
			Msg("partner skipped")
	})
	if len(candidates) == 0 {
		return domain.Recommendation{}, domain.ErrNoEligiblePartners
	}

	raw, err := uc.Oracle.Propose(ctx, order, candidates)
	if err != nil {
		return domain.Recommendation{}, err
	}
	proposal, err := domain.ParseProposal(raw)
	if err != nil {
		return domain.Recommendation{}, err
	}

	// Verification runs against the full roster, not the candidate set:
	// the oracle may only see candidates, but its claims are checked
	// against everything we actually know.
	rec := domain.VerifyProposal(proposal, order, roster)

	if uc.Store != nil && order.OrderUID != "" {
		if err := uc.Store.Save(ctx, order.OrderUID, rec); err != nil {
			uc.Log.Error().Err(err).Str("order_uid", order.OrderUID).Msg("save recommendation")
		}
	}
	return rec, nil
}

// GetRecommendation returns a stored recommendation by order uid.
type GetRecommendation struct {
	Store domain.RecommendationStore
}

func (uc GetRecommendation) Execute(ctx context.Context, orderUID string) (domain.Recommendation, error) {
	rec, ok, err := uc.Store.Get(ctx, orderUID)
	if err != nil {
		return domain.Recommendation{}, err
	}
	if !ok {
		return domain.Recommendation{}, domain.ErrNotFound
	}
	return rec, nil
}

// ProcessIncomingOrder handles an order message from the queue: decode,
// recommend, persist. Transient errors propagate so the subscriber can
// withhold the ack and let the message redeliver; terminal outcomes
// (no eligible partner) are logged and swallowed, redelivery would not
// change them.
type ProcessIncomingOrder struct {
	Recommend RecommendForOrder
	Log       zerolog.Logger
}

func (uc ProcessIncomingOrder) Execute(ctx context.Context, raw []byte) error {
	var order domain.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return err
	}
	if order.OrderUID == "" {
		return domain.ErrValidation
	}
	_, err := uc.Recommend.Execute(ctx, order)
	if errors.Is(err, domain.ErrNoEligiblePartners) {
		uc.Log.Warn().Str("order_uid", order.OrderUID).Msg("no eligible partners for queued order")
		return nil
	}
	return err
}
