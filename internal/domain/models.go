package domain

type Presentation string

const (
	PresentationPopup Presentation = "POPUP"
	PresentationEmbed Presentation = "EMBED"
)

type PaymentType string

const (
	PaymentFull           PaymentType = "FULL"
	PaymentPartialPercent PaymentType = "PARTIAL_PERCENTAGE"
	PaymentPartialFixed   PaymentType = "PARTIAL_FIXED"
)

type TermsDisplay string

const (
	TermsInline TermsDisplay = "INLINE"
	TermsPopup  TermsDisplay = "POPUP"
)

type PriceType string

const (
	PriceGlobalPercent  PriceType = "GLOBAL_PERCENTAGE"
	PriceProductPercent PriceType = "PRODUCT_PERCENTAGE"
	PriceProductFixed   PriceType = "PRODUCT_FIXED"
)

// System defaults applied when a shop has never saved anything.
const (
	DefaultWarrantyPercentage              = 10.0
	DefaultPresentation       Presentation = PresentationPopup
)

// ShopDefaults is the shop-level warranty configuration, one row per shop.
type ShopDefaults struct {
	Shop                 string       `json:"shop"`
	WarrantyEnabled      bool         `json:"warrantyEnabled"`
	WarrantyPresentation Presentation `json:"warrantyPresentation"`
	WarrantyPercentage   float64      `json:"warrantyPercentage"`
	WarrantyDescription  string       `json:"warrantyDescription"`
	WarrantyProductID    string       `json:"warrantyProductId"`
	CreatedAt            string       `json:"createdAt"`
	UpdatedAt            string       `json:"updatedAt"`
}

// DefaultsPatch carries only the fields a save supplied; nil means "leave as is".
type DefaultsPatch struct {
	WarrantyEnabled      *bool
	WarrantyPresentation *Presentation
	WarrantyPercentage   *float64
	WarrantyDescription  *string
	WarrantyProductID    *string
}

// OutOfStockBlock governs the out-of-stock surface for one product.
// There is no shop-level fallback: an absent block means fully disabled.
type OutOfStockBlock struct {
	Enabled      bool     `json:"enabled"`
	ButtonText   string   `json:"buttonText"`
	ButtonColor  string   `json:"buttonColor"`
	NotifyForm   bool     `json:"notifyForm"`
	RestockTimer bool     `json:"restockTimer"`
	RestockDate  string   `json:"restockDate"` // RFC 3339, empty = unset
	Recommend    bool     `json:"recommend"`
	RecommendIDs []string `json:"recommendIds"`
}

type PreorderBlock struct {
	Enabled      bool         `json:"enabled"`
	ButtonText   string       `json:"buttonText"`
	ButtonColor  string       `json:"buttonColor"`
	EndDate      string       `json:"endDate"`
	PaymentType  PaymentType  `json:"paymentType"`
	PaymentValue *float64     `json:"paymentValue"` // percentage or fixed amount per PaymentType
	Terms        string       `json:"terms"`
	TermsDisplay TermsDisplay `json:"termsDisplay"`
}

// WarrantyBlock is the per-product warranty override. Enabled and
// Presentation are tri-state: unset inherits the shop default.
type WarrantyBlock struct {
	Enabled      BoolOverride `json:"enabled"`
	Presentation ModeOverride `json:"presentation"`
	PriceType    PriceType    `json:"priceType"` // empty = inherit global percentage
	PriceValue   *float64     `json:"priceValue"`
	VariantID    string       `json:"variantId"`
}

// ProductOverride is the per-(shop, product) settings row. The three blocks
// are independent: saving one never disturbs the others.
type ProductOverride struct {
	Shop       string          `json:"shop"`
	ProductID  string          `json:"productId"`
	OutOfStock OutOfStockBlock `json:"outOfStock"`
	Preorder   PreorderBlock   `json:"preorder"`
	Warranty   WarrantyBlock   `json:"warranty"`
	CreatedAt  string          `json:"createdAt"`
	UpdatedAt  string          `json:"updatedAt"`
}

// EffectiveWarranty is the fully resolved warranty config for a product.
type EffectiveWarranty struct {
	Enabled      bool         `json:"enabled"`
	Presentation Presentation `json:"presentation"`
	PriceType    PriceType    `json:"priceType"`
	PriceValue   float64      `json:"priceValue"`
	VariantID    string       `json:"variantId"`
	Description  string       `json:"description"`
}

// EffectiveConfig is what the storefront widget consumes.
type EffectiveConfig struct {
	OutOfStock OutOfStockBlock   `json:"outOfStock"`
	Preorder   PreorderBlock     `json:"preorder"`
	Warranty   EffectiveWarranty `json:"warranty"`
}

type SubscriptionStatus string

const (
	SubPending  SubscriptionStatus = "PENDING"
	SubNotified SubscriptionStatus = "NOTIFIED"
	SubError    SubscriptionStatus = "ERROR"
)

// Subscription is one back-in-stock notification request. ID is the public
// uuid, not the storage row id.
type Subscription struct {
	ID         string             `json:"id"`
	Shop       string             `json:"shop"`
	ProductID  string             `json:"productId"`
	Email      string             `json:"email"`
	Name       string             `json:"name,omitempty"`
	Phone      string             `json:"phone,omitempty"`
	Status     SubscriptionStatus `json:"status"`
	CreatedAt  string             `json:"createdAt"`
	NotifiedAt string             `json:"notifiedAt,omitempty"`
}
