// Package order contains the Order aggregate: the single mutable record that
// an order-processing attempt drives from raw platform data to a written-back
// fulfillment decision.
//
// The aggregate owns the per-attempt decision state: classification flags,
// the merchant's eligible carrier set, the rate table accumulated while rate
// shopping, the winning rate, and the attempt status machine. It enforces the
// central invariant that a winning rate must reference a (carrier, service)
// pair actually observed in the rate table for this attempt, so an unverified
// price can never be written back.
//
// Orders are constructed once per processing attempt and discarded after
// write-back or terminal failure; no intermediate state outlives the attempt
// except the batch-scoped retry queue.
package order
