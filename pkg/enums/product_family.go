package enums

import "fmt"

// ProductFamily groups catalog products that share packaging policy defaults.
type ProductFamily string

const (
	ProductFamilyBusinessCards ProductFamily = "business_cards"
	ProductFamilyFlyers        ProductFamily = "flyers"
	ProductFamilyBrochures     ProductFamily = "brochures"
	ProductFamilyStickers      ProductFamily = "stickers"
	ProductFamilyPosters       ProductFamily = "posters"
	ProductFamilyStationery    ProductFamily = "stationery"
)

var productFamilies = map[ProductFamily]struct{}{
	ProductFamilyBusinessCards: {},
	ProductFamilyFlyers:        {},
	ProductFamilyBrochures:     {},
	ProductFamilyStickers:      {},
	ProductFamilyPosters:       {},
	ProductFamilyStationery:    {},
}

func ParseProductFamily(value string) (ProductFamily, error) {
	family := ProductFamily(value)
	if _, ok := productFamilies[family]; !ok {
		return "", fmt.Errorf("unknown product family %q", value)
	}
	return family, nil
}

func (f ProductFamily) String() string {
	return string(f)
}
