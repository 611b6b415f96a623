// Package carriers implements the per-carrier-family raters that turn an
// order's gathered rate table into delivery-dated candidates.
//
// UPS is the only family whose pricing and transit estimates come from
// separate sources; its rater joins the two by service name. The postal and
// FedEx families rate purely from the table, with no delivery commitment.
package carriers
