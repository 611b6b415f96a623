package commands

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"rateshop/internal/core/domain/model/order"
	"rateshop/internal/core/domain/model/rate"
	"rateshop/internal/core/domain/services"
	"rateshop/internal/core/ports"
	"rateshop/internal/pkg/errs"
)

// shippingProviderIDs maps winning carrier codes to the billing accounts
// used for rate-shopped channels.
var shippingProviderIDs = map[string]int{
	order.CarrierUSPS:        223479,
	order.CarrierUPS:         276012,
	order.CarrierFedEx:       223490,
	order.CarrierUPSWalleted: 661125,
}

// familyFailureReasons maps a rater's carrier family to the retry reason its
// definite failure produces.
var familyFailureReasons = map[string]order.FailureReason{
	order.CarrierUPS:   order.ReasonNoUPSRate,
	order.CarrierUSPS:  order.ReasonNoUSPSRate,
	order.CarrierFedEx: order.ReasonNoFedExRate,
}

// ProcessOrderCommandHandler drives one order through the decision pipeline.
//
// First-pass retryable failures are appended to the batch retry queue and
// leave the order at its pre-failure status; HandleRetry replays such
// entries exactly once and escalates repeat failures to a platform tag plus
// the terminal Failed status. Fatal failures tag and fail immediately.
type ProcessOrderCommandHandler struct {
	source     ports.OrderSource
	gateway    ports.RateGateway
	catalog    ports.ProductCatalog
	resolver   *services.DimensionResolver
	classifier *services.Classifier
	selector   *services.ChampionSelector
	raters     []ports.CarrierRater
	logger     *slog.Logger
}

// NewProcessOrderCommandHandler creates a handler over the given
// collaborators. Raters are consulted in slice order, which fixes the
// price tie-break between carrier families.
func NewProcessOrderCommandHandler(
	source ports.OrderSource,
	gateway ports.RateGateway,
	catalog ports.ProductCatalog,
	classifier *services.Classifier,
	raters []ports.CarrierRater,
	logger *slog.Logger,
) (ProcessOrderCommandHandler, error) {
	if source == nil {
		return ProcessOrderCommandHandler{}, errs.NewValueIsRequiredError("source")
	}
	if gateway == nil {
		return ProcessOrderCommandHandler{}, errs.NewValueIsRequiredError("gateway")
	}
	if catalog == nil {
		return ProcessOrderCommandHandler{}, errs.NewValueIsRequiredError("catalog")
	}
	if classifier == nil {
		return ProcessOrderCommandHandler{}, errs.NewValueIsRequiredError("classifier")
	}
	if len(raters) == 0 {
		return ProcessOrderCommandHandler{}, errs.NewValueIsRequiredError("raters")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return ProcessOrderCommandHandler{
		source:     source,
		gateway:    gateway,
		catalog:    catalog,
		resolver:   services.NewDimensionResolver(),
		classifier: classifier,
		selector:   services.NewChampionSelector(),
		raters:     raters,
		logger:     logger,
	}, nil
}

// Handle runs the full first-pass pipeline for one order.
//
// A nil return with the order in Failed status means an order-level failure
// that must not abort the rest of the batch; a non-nil error is a defect in
// the pipeline itself.
func (h *ProcessOrderCommandHandler) Handle(ctx context.Context, cmd ProcessOrderCommand, retries *RetryQueue) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if retries == nil {
		return errs.NewValueIsRequiredError("retries")
	}

	aggregate := cmd.Order()
	log := h.logger.With("order_key", aggregate.Key(), "store", aggregate.StoreName())

	if err := h.resolveDimensions(ctx, aggregate); err != nil {
		if errors.Is(err, services.ErrNoDimensions) {
			log.Warn("no dimensions resolvable")
			return h.failFatally(ctx, aggregate, order.ReasonNoDimensions)
		}
		return err
	}

	profile, err := h.classifier.Classify(aggregate)
	if err != nil {
		return err
	}
	if !profile.Processed {
		log.Info("channel not handled, skipping", "trading_partner", aggregate.TradingPartner())
		return nil
	}

	h.classifier.ApplyShipDate(aggregate, profile.ShipDate)

	flags := aggregate.Flags()
	if flags.Multi || flags.Double || flags.Complex {
		h.addTag(ctx, aggregate, TagMultiOrder, log)
	}
	if flags.Expedited {
		h.addTag(ctx, aggregate, TagExpedited, log)
	}

	if profile.RateShop {
		halted, err := h.rateShop(ctx, aggregate, retries)
		if halted || err != nil {
			return err
		}
	}

	return h.writeBack(ctx, aggregate, retries)
}

// HandleRetry replays one retry entry, re-entering the pipeline at the stage
// its reason calls for. A repeat failure tags the order with the reason and
// fails it terminally.
func (h *ProcessOrderCommandHandler) HandleRetry(ctx context.Context, entry RetryEntry) error {
	if entry.Order == nil {
		return errs.NewValueIsRequiredError("entry order")
	}
	aggregate := entry.Order
	replay := NewRetryQueue()

	var err error
	switch entry.Reason {
	case order.ReasonWriteBackFailed:
		err = h.writeBack(ctx, aggregate, replay)
	case order.ReasonNoDeliveryDate, order.ReasonNoCarrierRates:
		if err = aggregate.ClearRates(); err != nil {
			return err
		}
		var halted bool
		halted, err = h.rateShop(ctx, aggregate, replay)
		if err == nil && !halted {
			err = h.writeBack(ctx, aggregate, replay)
		}
	default:
		var halted bool
		halted, err = h.selectWinner(ctx, aggregate, replay)
		if err == nil && !halted {
			err = h.writeBack(ctx, aggregate, replay)
		}
	}
	if err != nil {
		return err
	}

	for _, failed := range replay.Drain() {
		h.logger.Warn("order failed again on replay",
			"order_key", aggregate.Key(), "reason", string(failed.Reason))
		if err := h.failFatally(ctx, aggregate, failed.Reason); err != nil {
			return err
		}
	}
	return nil
}

// resolveDimensions runs the SKU tables first and falls back to the
// platform's product record for the package size. The fallback cannot
// supply a weight, so it only completes orders whose weight arrived
// upstream.
func (h *ProcessOrderCommandHandler) resolveDimensions(ctx context.Context, aggregate *order.Order) error {
	err := h.resolver.Resolve(aggregate)
	if err == nil || !errors.Is(err, services.ErrNoDimensions) {
		return err
	}

	shipment := aggregate.Shipment()
	if shipment.Weight == nil || shipment.Dimensions != nil {
		return services.ErrNoDimensions
	}

	dimensions, catalogErr := h.catalog.GetDimensions(ctx, aggregate.Items()[0].ProductID)
	if catalogErr != nil {
		if errors.Is(catalogErr, errs.ErrObjectNotFound) {
			return services.ErrNoDimensions
		}
		return catalogErr
	}
	shipment.Dimensions = &dimensions
	return nil
}

func (h *ProcessOrderCommandHandler) rateShop(ctx context.Context, aggregate *order.Order, retries *RetryQueue) (bool, error) {
	if err := h.classifier.ResolveWarehouse(aggregate); err != nil {
		if errors.Is(err, services.ErrNoWarehouse) {
			return true, h.failFatally(ctx, aggregate, order.ReasonNoWarehouse)
		}
		return true, err
	}

	if aggregate.DeliverBy() == nil {
		return true, retries.Add(aggregate, order.ReasonNoDeliveryDate)
	}

	if halted, err := h.gatherRates(ctx, aggregate, retries); halted || err != nil {
		return halted, err
	}
	if err := aggregate.MarkRatesGathered(); err != nil {
		return true, err
	}

	return h.selectWinner(ctx, aggregate, retries)
}

// gatherRates queries the platform once per eligible carrier, sequentially.
// The rate table is mutated in place, so carrier calls for one order are
// never fanned out.
func (h *ProcessOrderCommandHandler) gatherRates(ctx context.Context, aggregate *order.Order, retries *RetryQueue) (bool, error) {
	for _, carrier := range aggregate.EligibleCarriers() {
		query, err := ports.NewRateQuery(aggregate, carrier)
		if err != nil {
			if errors.Is(err, ports.ErrDimensionsMissing) {
				return true, h.failFatally(ctx, aggregate, order.ReasonNoDimensions)
			}
			return true, err
		}

		serviceRates, err := h.gateway.GetRates(ctx, query)
		if err != nil {
			if errors.Is(err, ports.ErrNoRateAvailable) {
				continue
			}
			h.logger.Warn("carrier rate request failed",
				"order_key", aggregate.Key(), "carrier", carrier, "error", err)
			return true, retries.Add(aggregate, order.ReasonNoCarrierRates)
		}

		rated := make([]order.RatedService, 0, len(serviceRates))
		for _, serviceRate := range serviceRates {
			rated = append(rated, order.RatedService{
				Name:  serviceRate.ServiceName,
				Code:  serviceRate.ServiceCode,
				Price: serviceRate.Total(),
			})
		}
		if err := aggregate.RecordCarrierRates(carrier, rated); err != nil {
			return true, err
		}
	}
	return false, nil
}

func (h *ProcessOrderCommandHandler) selectWinner(ctx context.Context, aggregate *order.Order, retries *RetryQueue) (bool, error) {
	if aggregate.IsPOBox() {
		return h.selectPostalWinner(ctx, aggregate)
	}

	var lists [][]rate.Candidate
	for _, rater := range h.raters {
		if !h.familyEligible(aggregate, rater.Carrier()) {
			continue
		}
		candidates, err := rater.Candidates(ctx, aggregate)
		if err != nil {
			reason, ok := familyFailureReasons[rater.Carrier()]
			if !ok {
				return true, err
			}
			h.logger.Warn("carrier family failed to rate",
				"order_key", aggregate.Key(), "carrier", rater.Carrier(), "error", err)
			return true, retries.Add(aggregate, reason)
		}
		lists = append(lists, candidates)
	}

	winner, err := h.selector.SelectWinner(aggregate, lists...)
	if err != nil {
		if errors.Is(err, services.ErrNoEligibleCarriers) {
			return true, h.failFatally(ctx, aggregate, order.ReasonNoCarrierRates)
		}
		return true, err
	}
	return false, aggregate.SetWinningRate(winner)
}

// selectPostalWinner handles PO Box destinations, which may only ship on the
// postal network.
func (h *ProcessOrderCommandHandler) selectPostalWinner(ctx context.Context, aggregate *order.Order) (bool, error) {
	if !aggregate.HasEligibleCarrier(order.CarrierUSPS) {
		return true, h.failFatally(ctx, aggregate, order.ReasonNoUSPSRate)
	}

	rater := h.raterFor(order.CarrierUSPS)
	if rater == nil {
		return true, errs.NewObjectNotFoundError("rater", order.CarrierUSPS)
	}

	candidates, err := rater.Candidates(ctx, aggregate)
	if err != nil {
		h.logger.Warn("postal rating failed for po box order",
			"order_key", aggregate.Key(), "error", err)
		return true, h.failFatally(ctx, aggregate, order.ReasonNoUSPSRate)
	}

	winner, err := h.selector.SelectPostal(candidates)
	if err != nil {
		return true, h.failFatally(ctx, aggregate, order.ReasonNoUSPSRate)
	}
	return false, aggregate.SetWinningRate(winner)
}

func (h *ProcessOrderCommandHandler) writeBack(ctx context.Context, aggregate *order.Order, retries *RetryQueue) error {
	h.applyBillingAccount(aggregate)

	if err := h.source.CreateOrUpdate(ctx, aggregate); err != nil {
		h.logger.Warn("write back failed",
			"order_key", aggregate.Key(), "error", err)
		return retries.Add(aggregate, order.ReasonWriteBackFailed)
	}

	if err := aggregate.MarkWrittenBack(); err != nil {
		return err
	}
	h.addTag(ctx, aggregate, TagReady, h.logger)
	return nil
}

// applyBillingAccount points label billing at the account matching the
// winning carrier. Orders routed without rate shopping keep their billing
// untouched.
func (h *ProcessOrderCommandHandler) applyBillingAccount(aggregate *order.Order) {
	winner := aggregate.WinningRate()
	if winner == nil {
		return
	}
	providerID, ok := shippingProviderIDs[winner.Carrier()]
	if !ok {
		return
	}

	shipment := aggregate.Shipment()
	if shipment.AdvancedOptions == nil {
		shipment.AdvancedOptions = make(map[string]string)
	}
	shipment.AdvancedOptions["billToParty"] = "my_other_account"
	shipment.AdvancedOptions["billToMyOtherAccount"] = strconv.Itoa(providerID)
}

// familyEligible reports whether any account of the rater's family is in
// the order's eligible carrier list.
func (h *ProcessOrderCommandHandler) familyEligible(aggregate *order.Order, family string) bool {
	if order.IsUPSFamily(family) {
		return aggregate.HasEligibleCarrier(order.CarrierUPS) ||
			aggregate.HasEligibleCarrier(order.CarrierUPSWalleted)
	}
	return aggregate.HasEligibleCarrier(family)
}

func (h *ProcessOrderCommandHandler) raterFor(family string) ports.CarrierRater {
	for _, rater := range h.raters {
		if rater.Carrier() == family {
			return rater
		}
	}
	return nil
}

func (h *ProcessOrderCommandHandler) failFatally(ctx context.Context, aggregate *order.Order, reason order.FailureReason) error {
	if tagID, ok := FailureTag(reason); ok {
		h.addTag(ctx, aggregate, tagID, h.logger)
	}
	return aggregate.Fail(reason)
}

func (h *ProcessOrderCommandHandler) addTag(ctx context.Context, aggregate *order.Order, tagID int, log *slog.Logger) {
	if err := h.source.AddTag(ctx, aggregate.ID(), tagID); err != nil {
		log.Warn("could not tag order",
			"order_key", aggregate.Key(), "tag_id", tagID, "error", err)
		return
	}
	aggregate.RecordTag(tagID)
}
