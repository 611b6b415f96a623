package services

import (
	"errors"
	"strings"

	"rateshop/internal/core/domain/model/kernel"
	"rateshop/internal/core/domain/model/order"
)

// ErrNoDimensions is returned when no SKU prefix table entry matches and the
// shipment carries no package profile from upstream data.
var ErrNoDimensions = errors.New("no dimensions resolvable for order")

// packageProfile is one row of the size table.
type packageProfile struct {
	length, width, height float64
	weightOunces          float64
}

// skuAlias maps a product SKU prefix to a size-table key. Several framed
// products share one box size under different SKU families.
type skuAlias struct {
	prefix  string
	sizeKey string
}

// sizeEntry binds a size-table key, itself matched as a SKU prefix when no
// alias applies, to a package profile. Declaration order is the tie-break
// for equal-length prefix matches; prefixes are curated to not overlap.
type sizeEntry struct {
	key     string
	profile packageProfile
}

var skuAliases = []skuAlias{
	{"1216FL3D", "12x18"},
	{"1216F3D", "12x18"},
	{"1216U3D", "12x18"},
	{"17523F", "17.5x23"},
	{"2335F", "23x35"},
	{"1212F", "12x12"},
	{"1218F", "12x18"},
	{"832F", "8x32"},
	{"912F", "9x12"},
	{"624F", "6x24"},
	{"28F", "2x8"},
}

var sizeTable = []sizeEntry{
	{"12x18", packageProfile{16, 20, 2, 80}},
	{"11x14", packageProfile{16, 20, 2, 80}},
	{"17.5x23", packageProfile{19, 25, 2, 96}},
	{"16x20", packageProfile{19, 25, 2, 96}},
	{"16x24", packageProfile{19, 25, 2, 96}},
	{"22x34", packageProfile{26, 38, 2, 128}},
	{"23x35", packageProfile{26, 38, 2, 128}},
	{"23x36", packageProfile{26, 38, 2, 128}},
	{"22x28", packageProfile{31, 23, 2, 96}},
	{"6x24", packageProfile{26, 38, 2, 32}},
	{"8x32", packageProfile{39, 13, 2, 80}},
	{"8x10", packageProfile{13, 13, 2, 16}},
	{"9x12", packageProfile{13, 13, 2, 16}},
	{"12x12", packageProfile{13, 13, 2, 16}},
	{"15x40", packageProfile{45, 20, 2, 128}},
	{"9x27", packageProfile{45, 20, 2, 128}},
	{"2x8", packageProfile{9, 3, 3, 16}},
	{"12x36", packageProfile{45, 20, 2, 128}},
	{"CERSNCJ", packageProfile{11, 10.5, 14, 71}},
	{"INFLSCF", packageProfile{7, 7, 7, 38}},
	{"STRART", packageProfile{12, 12, 3, 39}},
	{"INFLCP", packageProfile{10, 6, 3, 10}},
	{"INFLJH", packageProfile{10, 8, 6, 46}},
	{"INFLSB", packageProfile{10, 8, 6, 54}},
	{"INDLSD", packageProfile{10, 8, 6, 51}},
	{"CERPM", packageProfile{12, 12.5, 13.5, 82}},
	{"BBRIT", packageProfile{7, 7, 5, 13}},
	{"CARDL", packageProfile{6, 4, 4, 6}},
	{"CRDDT", packageProfile{4, 4, 16, 12}},
	{"GDPWT", packageProfile{5, 5, 3, 25}},
	{"MGLMP", packageProfile{12, 9, 5, 67}},
	{"SCARL", packageProfile{36, 12, 4, 44}},
	{"SOLTR", packageProfile{14, 6, 6, 25}},
	{"SPOTL", packageProfile{6, 4, 4, 6}},
	{"CRCCS", packageProfile{9, 7, 1, 3.2}},
	{"SAND", packageProfile{8.5, 12.5, 1, 17}},
	{"SCRT", packageProfile{15, 13, 1, 7}},
	{"BPOT", packageProfile{8, 8, 8, 18}},
}

// DimensionResolver derives a shipment's package profile from the first line
// item's SKU using curated prefix tables.
type DimensionResolver struct{}

// NewDimensionResolver creates a resolver over the built-in SKU tables.
func NewDimensionResolver() *DimensionResolver {
	return &DimensionResolver{}
}

// Resolve writes the package profile matched for the order's first SKU into
// its shipment. Already-present dimensions and weight are never overwritten.
// Returns ErrNoDimensions when nothing matches.
func (r *DimensionResolver) Resolve(aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	shipment := aggregate.Shipment()
	if shipment.HasPackageProfile() {
		return nil
	}

	sku := aggregate.Items()[0].SKU
	profile, ok := lookupProfile(sku)
	if !ok {
		return ErrNoDimensions
	}

	dimensions, err := kernel.NewDimensions(profile.length, profile.width, profile.height)
	if err != nil {
		return err
	}
	weight, err := kernel.NewWeight(profile.weightOunces)
	if err != nil {
		return err
	}

	shipment.Dimensions = &dimensions
	shipment.Weight = &weight
	return nil
}

// lookupProfile finds the longest matching prefix for the SKU across the
// alias table and the size table, preferring earlier declarations on ties.
func lookupProfile(sku string) (packageProfile, bool) {
	bestLen := -1
	var best packageProfile

	for _, alias := range skuAliases {
		if len(alias.prefix) > bestLen && strings.HasPrefix(sku, alias.prefix) {
			if profile, ok := profileForKey(alias.sizeKey); ok {
				bestLen = len(alias.prefix)
				best = profile
			}
		}
	}
	for _, entry := range sizeTable {
		if len(entry.key) > bestLen && strings.HasPrefix(sku, entry.key) {
			bestLen = len(entry.key)
			best = entry.profile
		}
	}

	return best, bestLen >= 0
}

func profileForKey(key string) (packageProfile, bool) {
	for _, entry := range sizeTable {
		if entry.key == key {
			return entry.profile, true
		}
	}
	return packageProfile{}, false
}
