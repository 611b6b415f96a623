// Package services provides stateless domain services for the rate-shopping
// pipeline: resolving package dimensions from SKU tables, classifying orders
// into merchant profiles and eligibility flags, and selecting the champion
// rate from merged carrier candidates.
//
// The package includes:
//   - DimensionResolver: derives package size and weight from SKU prefixes
//   - Classifier: derives flags, trading partner, carriers and warehouse
//   - ChampionSelector: reduces candidate lists to one winning rate
//
// Domain services hold only static reference data and an injected clock;
// all per-order state lives on the order aggregate.
package services
