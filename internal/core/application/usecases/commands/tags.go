package commands

import "rateshop/internal/core/domain/model/order"

// Platform tag ids for the merchant account. Tags are the user-visible
// outcome signal on the platform's front end.
const (
	TagReady      = 55809
	TagMultiOrder = 55810
	TagNoDims     = 55811
	TagNoRates    = 55812
	TagExpedited  = 55476
	TagAmazon     = 55813
	TagNoWarehouse = 55827

	TagNoDeliveryDate  = 55828
	TagNoUPSRate       = 55829
	TagNoUSPSRate      = 55830
	TagNoFedExRate     = 55831
	TagWriteBackFailed = 55832
)

var failureTags = map[order.FailureReason]int{
	order.ReasonNoDimensions:    TagNoDims,
	order.ReasonNoWarehouse:     TagNoWarehouse,
	order.ReasonNoDeliveryDate:  TagNoDeliveryDate,
	order.ReasonNoCarrierRates:  TagNoRates,
	order.ReasonNoUPSRate:       TagNoUPSRate,
	order.ReasonNoUSPSRate:      TagNoUSPSRate,
	order.ReasonNoFedExRate:     TagNoFedExRate,
	order.ReasonWriteBackFailed: TagWriteBackFailed,
}

// FailureTag returns the platform tag id for a failure reason.
func FailureTag(reason order.FailureReason) (int, bool) {
	id, ok := failureTags[reason]
	return id, ok
}
