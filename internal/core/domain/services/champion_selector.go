package services

import (
	"errors"
	"sort"

	"rateshop/internal/core/domain/model/order"
	"rateshop/internal/core/domain/model/rate"
)

// ErrNoEligibleCarriers is returned when every queried carrier came back with
// an empty candidate list.
var ErrNoEligibleCarriers = errors.New("no eligible carrier produced a candidate")

// ChampionSelector reduces the candidate lists from all eligible carriers to
// one winning rate.
type ChampionSelector struct{}

// NewChampionSelector creates a selector.
func NewChampionSelector() *ChampionSelector {
	return &ChampionSelector{}
}

// SelectWinner merges the candidate lists, sorts ascending by price and picks
// the cheapest. Price ties keep merge order, so the carrier queried first
// wins. Single-stream orders skip a cheapest Ground Saver candidate and take
// the runner-up instead.
func (s *ChampionSelector) SelectWinner(aggregate *order.Order, candidateLists ...[]rate.Candidate) (rate.Candidate, error) {
	if err := aggregate.Validate(); err != nil {
		return rate.Candidate{}, err
	}

	var merged []rate.Candidate
	for _, list := range candidateLists {
		merged = append(merged, list...)
	}
	if len(merged) == 0 {
		return rate.Candidate{}, ErrNoEligibleCarriers
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Price().LessThan(merged[j].Price())
	})

	winner := merged[0]
	if aggregate.IsSingleStream() && winner.IsGroundSaver() {
		if len(merged) < 2 {
			return rate.Candidate{}, ErrNoEligibleCarriers
		}
		winner = merged[1]
	}
	return winner, nil
}

// SelectPostal picks the cheapest postal candidate for PO Box destinations.
// No deadline or single-stream overrides apply on the postal network.
func (s *ChampionSelector) SelectPostal(candidates []rate.Candidate) (rate.Candidate, error) {
	var winner rate.Candidate
	found := false
	for _, candidate := range candidates {
		if !order.IsPostalFamily(candidate.Carrier()) {
			continue
		}
		if !found || candidate.Price().LessThan(winner.Price()) {
			winner = candidate
			found = true
		}
	}
	if !found {
		return rate.Candidate{}, ErrNoEligibleCarriers
	}
	return winner, nil
}
