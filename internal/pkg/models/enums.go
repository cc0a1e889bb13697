package models

import "math/rand"

// Currency is a closed set of supported transaction currencies
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

// AllCurrencies lists every supported currency
var AllCurrencies = []Currency{CurrencyEUR, CurrencyUSD, CurrencyGBP}

// RandomSuspiciousCurrency picks a currency the customer does not normally use.
// Falls back to the preferred currency when no alternative exists.
func RandomSuspiciousCurrency(preferred Currency) Currency {
	infrequent := make([]Currency, 0, len(AllCurrencies))
	for _, c := range AllCurrencies {
		if c != preferred {
			infrequent = append(infrequent, c)
		}
	}
	if len(infrequent) == 0 {
		return preferred
	}
	return infrequent[rand.Intn(len(infrequent))]
}

// Category is a closed set of spending categories
type Category string

const (
	CategoryRetail         Category = "RETAIL"
	CategoryTech           Category = "TECH"
	CategoryGrocery        Category = "GROCERY"
	CategoryShopping       Category = "SHOPPING"
	CategoryElectronics    Category = "ELECTRONICS"
	CategoryFood           Category = "FOOD"
	CategoryBeverages      Category = "BEVERAGES"
	CategoryTransportation Category = "TRANSPORTATION"
	CategoryFuel           Category = "FUEL"
	CategoryEntertainment  Category = "ENTERTAINMENT"
	CategorySubscription   Category = "SUBSCRIPTION"
)

// AllCategories lists every supported spending category
var AllCategories = []Category{
	CategoryRetail, CategoryTech, CategoryGrocery, CategoryShopping,
	CategoryElectronics, CategoryFood, CategoryBeverages,
	CategoryTransportation, CategoryFuel, CategoryEntertainment,
	CategorySubscription,
}

// FrequentCategory picks one of the customer's trusted categories.
// With no trusted categories it picks from the full set.
func FrequentCategory(trusted []Category) Category {
	if len(trusted) == 0 {
		return AllCategories[rand.Intn(len(AllCategories))]
	}
	return trusted[rand.Intn(len(trusted))]
}

// UnfrequentCategory picks a category outside the customer's trusted set.
// When the customer trusts every category it falls back to a trusted one.
func UnfrequentCategory(trusted []Category) Category {
	if len(trusted) == 0 {
		return AllCategories[rand.Intn(len(AllCategories))]
	}
	trustedSet := make(map[Category]struct{}, len(trusted))
	for _, c := range trusted {
		trustedSet[c] = struct{}{}
	}
	infrequent := make([]Category, 0, len(AllCategories))
	for _, c := range AllCategories {
		if _, ok := trustedSet[c]; !ok {
			infrequent = append(infrequent, c)
		}
	}
	if len(infrequent) == 0 {
		return FrequentCategory(trusted)
	}
	return infrequent[rand.Intn(len(infrequent))]
}

// Merchant is a closed set of known merchants
type Merchant string

const (
	MerchantAmazon      Merchant = "AMAZON"
	MerchantWalmart     Merchant = "WALMART"
	MerchantBestBuy     Merchant = "BEST_BUY"
	MerchantTarget      Merchant = "TARGET"
	MerchantCostco      Merchant = "COSTCO"
	MerchantEtsy        Merchant = "ETSY"
	MerchantEbay        Merchant = "EBAY"
	MerchantIkea        Merchant = "IKEA"
	MerchantApple       Merchant = "APPLE"
	MerchantMicrosoft   Merchant = "MICROSOFT"
	MerchantGoogle      Merchant = "GOOGLE"
	MerchantSamsung     Merchant = "SAMSUNG"
	MerchantSony        Merchant = "SONY"
	MerchantDell        Merchant = "DELL"
	MerchantHP          Merchant = "HP"
	MerchantLenovo      Merchant = "LENOVO"
	MerchantDunnes      Merchant = "DUNNES_STORES"
	MerchantLidl        Merchant = "LIDL"
	MerchantTesco       Merchant = "TESCO"
	MerchantAldi        Merchant = "ALDI"
	MerchantWholeFoods  Merchant = "WHOLE_FOODS"
	MerchantTraderJoes  Merchant = "TRADER_JOES"
	MerchantStarbucks   Merchant = "STARBUCKS"
	MerchantMcDonalds   Merchant = "MCDONALDS"
	MerchantBurgerKing  Merchant = "BURGER_KING"
	MerchantSubway      Merchant = "SUBWAY"
	MerchantDominos     Merchant = "DOMINOS"
	MerchantPizzaHut    Merchant = "PIZZA_HUT"
	MerchantShell       Merchant = "SHELL"
	MerchantBP          Merchant = "BP"
	MerchantExxon       Merchant = "EXXON"
	MerchantChevron     Merchant = "CHEVRON"
	MerchantTexaco      Merchant = "TEXACO"
	MerchantNetflix     Merchant = "NETFLIX"
	MerchantSpotify     Merchant = "SPOTIFY"
	MerchantDisneyPlus  Merchant = "DISNEY_PLUS"
	MerchantHBOMax      Merchant = "HBO_MAX"
	MerchantAmazonPrime Merchant = "AMAZON_PRIME"
	MerchantZara        Merchant = "ZARA"
	MerchantHM          Merchant = "H_M"
	MerchantNike        Merchant = "NIKE"
	MerchantAdidas      Merchant = "ADIDAS"
	MerchantGap         Merchant = "GAP"
)

// AllMerchants lists every known merchant
var AllMerchants = []Merchant{
	MerchantAmazon, MerchantWalmart, MerchantBestBuy, MerchantTarget,
	MerchantCostco, MerchantEtsy, MerchantEbay, MerchantIkea,
	MerchantApple, MerchantMicrosoft, MerchantGoogle, MerchantSamsung,
	MerchantSony, MerchantDell, MerchantHP, MerchantLenovo,
	MerchantDunnes, MerchantLidl, MerchantTesco, MerchantAldi,
	MerchantWholeFoods, MerchantTraderJoes,
	MerchantStarbucks, MerchantMcDonalds, MerchantBurgerKing,
	MerchantSubway, MerchantDominos, MerchantPizzaHut,
	MerchantShell, MerchantBP, MerchantExxon, MerchantChevron, MerchantTexaco,
	MerchantNetflix, MerchantSpotify, MerchantDisneyPlus, MerchantHBOMax,
	MerchantAmazonPrime,
	MerchantZara, MerchantHM, MerchantNike, MerchantAdidas, MerchantGap,
}

var categoryMerchants = map[Category][]Merchant{
	CategoryRetail:         {MerchantAmazon, MerchantWalmart, MerchantBestBuy, MerchantTarget, MerchantCostco, MerchantEtsy, MerchantEbay, MerchantIkea},
	CategoryTech:           {MerchantApple, MerchantMicrosoft, MerchantGoogle, MerchantSamsung, MerchantSony, MerchantDell, MerchantHP, MerchantLenovo},
	CategoryElectronics:    {MerchantApple, MerchantMicrosoft, MerchantGoogle, MerchantSamsung, MerchantSony, MerchantDell, MerchantHP, MerchantLenovo},
	CategoryGrocery:        {MerchantDunnes, MerchantLidl, MerchantTesco, MerchantAldi, MerchantWholeFoods, MerchantTraderJoes},
	CategoryFood:           {MerchantMcDonalds, MerchantBurgerKing, MerchantSubway, MerchantDominos, MerchantPizzaHut},
	CategoryBeverages:      {MerchantStarbucks},
	CategoryTransportation: {MerchantShell, MerchantBP, MerchantExxon, MerchantChevron, MerchantTexaco},
	CategoryFuel:           {MerchantShell, MerchantBP, MerchantExxon, MerchantChevron, MerchantTexaco},
	CategoryEntertainment:  {MerchantNetflix, MerchantSpotify, MerchantDisneyPlus, MerchantHBOMax, MerchantAmazonPrime},
	CategorySubscription:   {MerchantNetflix, MerchantSpotify, MerchantDisneyPlus, MerchantHBOMax, MerchantAmazonPrime},
	CategoryShopping:       {MerchantZara, MerchantHM, MerchantNike, MerchantAdidas, MerchantGap},
}

// RandomMerchant picks a merchant that belongs to the given category.
// Unknown categories fall back to the full merchant set.
func RandomMerchant(category Category) Merchant {
	merchants, ok := categoryMerchants[category]
	if !ok || len(merchants) == 0 {
		return AllMerchants[rand.Intn(len(AllMerchants))]
	}
	return merchants[rand.Intn(len(merchants))]
}
