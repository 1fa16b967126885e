package repos

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"restockly/internal/apperr"
	"restockly/internal/domain"
)

// SettingsRepo is the store for shop defaults and per-product overrides.
// One override row per (shop, product); a second create converts to an
// update via the unique constraint.
type SettingsRepo struct{ db *sqlx.DB }

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

type defaultsRow struct {
	Shop                 string         `db:"shop"`
	WarrantyEnabled      bool           `db:"warranty_enabled"`
	WarrantyPresentation string         `db:"warranty_presentation"`
	WarrantyPercentage   float64        `db:"warranty_percentage"`
	WarrantyDescription  string         `db:"warranty_description"`
	WarrantyProductID    string         `db:"warranty_product_id"`
	CreatedAt            string         `db:"created_at"`
	UpdatedAt            sql.NullString `db:"updated_at"`
}

func (r defaultsRow) toDomain() *domain.ShopDefaults {
	return &domain.ShopDefaults{
		Shop:                 r.Shop,
		WarrantyEnabled:      r.WarrantyEnabled,
		WarrantyPresentation: domain.Presentation(r.WarrantyPresentation),
		WarrantyPercentage:   r.WarrantyPercentage,
		WarrantyDescription:  r.WarrantyDescription,
		WarrantyProductID:    r.WarrantyProductID,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt.String,
	}
}

const defaultsCols = `shop, warranty_enabled, warranty_presentation, warranty_percentage,
  warranty_description, warranty_product_id, created_at, updated_at`

// GetShopDefaults returns nil when the shop has never saved defaults;
// callers fall back to the system defaults.
func (r *SettingsRepo) GetShopDefaults(shop string) (*domain.ShopDefaults, error) {
	if strings.TrimSpace(shop) == "" {
		return nil, apperr.Validation("missing shop")
	}
	var row defaultsRow
	err := r.db.Get(&row, `SELECT `+defaultsCols+` FROM shop_defaults WHERE shop = ?`, shop)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return row.toDomain(), nil
}

// UpsertShopDefaults creates the row with system defaults when absent, then
// merges only the fields the patch supplies. Unspecified fields are never
// cleared.
func (r *SettingsRepo) UpsertShopDefaults(shop string, patch domain.DefaultsPatch) (*domain.ShopDefaults, error) {
	if strings.TrimSpace(shop) == "" {
		return nil, apperr.Validation("missing shop")
	}
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT INTO shop_defaults(shop) VALUES(?) ON CONFLICT(shop) DO NOTHING`, shop); err != nil {
		return nil, apperr.Storage(err)
	}
	var pres *string
	if patch.WarrantyPresentation != nil {
		s := string(*patch.WarrantyPresentation)
		pres = &s
	}
	if _, err := tx.Exec(`
	  UPDATE shop_defaults SET
	    warranty_enabled      = COALESCE(?, warranty_enabled),
	    warranty_presentation = COALESCE(?, warranty_presentation),
	    warranty_percentage   = COALESCE(?, warranty_percentage),
	    warranty_description  = COALESCE(?, warranty_description),
	    warranty_product_id   = COALESCE(?, warranty_product_id),
	    updated_at            = CURRENT_TIMESTAMP
	  WHERE shop = ?
	`, patch.WarrantyEnabled, pres, patch.WarrantyPercentage, patch.WarrantyDescription, patch.WarrantyProductID, shop); err != nil {
		return nil, apperr.Storage(err)
	}

	var row defaultsRow
	if err := tx.Get(&row, `SELECT `+defaultsCols+` FROM shop_defaults WHERE shop = ?`, shop); err != nil {
		return nil, apperr.Storage(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, apperr.Storage(err)
	}
	return row.toDomain(), nil
}

type overrideRow struct {
	Shop      string `db:"shop"`
	ProductID string `db:"product_id"`

	OosEnabled      bool           `db:"oos_enabled"`
	OosButtonText   string         `db:"oos_button_text"`
	OosButtonColor  string         `db:"oos_button_color"`
	OosNotifyForm   bool           `db:"oos_notify_form"`
	OosRestockTimer bool           `db:"oos_restock_timer"`
	OosRestockDate  sql.NullString `db:"oos_restock_date"`
	OosRecommend    bool           `db:"oos_recommend"`
	OosRecommendIDs string         `db:"oos_recommend_ids"`

	PreEnabled      bool            `db:"pre_enabled"`
	PreButtonText   string          `db:"pre_button_text"`
	PreButtonColor  string          `db:"pre_button_color"`
	PreEndDate      sql.NullString  `db:"pre_end_date"`
	PrePaymentType  string          `db:"pre_payment_type"`
	PrePaymentValue sql.NullFloat64 `db:"pre_payment_value"`
	PreTerms        string          `db:"pre_terms"`
	PreTermsDisplay string          `db:"pre_terms_display"`

	WarEnabled      sql.NullBool    `db:"war_enabled"`
	WarPresentation sql.NullString  `db:"war_presentation"`
	WarPriceType    string          `db:"war_price_type"`
	WarPriceValue   sql.NullFloat64 `db:"war_price_value"`
	WarVariantID    string          `db:"war_variant_id"`

	CreatedAt string         `db:"created_at"`
	UpdatedAt sql.NullString `db:"updated_at"`
}

func (r overrideRow) toDomain() *domain.ProductOverride {
	out := &domain.ProductOverride{
		Shop:      r.Shop,
		ProductID: r.ProductID,
		OutOfStock: domain.OutOfStockBlock{
			Enabled:      r.OosEnabled,
			ButtonText:   r.OosButtonText,
			ButtonColor:  r.OosButtonColor,
			NotifyForm:   r.OosNotifyForm,
			RestockTimer: r.OosRestockTimer,
			RestockDate:  r.OosRestockDate.String,
			Recommend:    r.OosRecommend,
			RecommendIDs: splitIDs(r.OosRecommendIDs),
		},
		Preorder: domain.PreorderBlock{
			Enabled:      r.PreEnabled,
			ButtonText:   r.PreButtonText,
			ButtonColor:  r.PreButtonColor,
			EndDate:      r.PreEndDate.String,
			PaymentType:  domain.PaymentType(r.PrePaymentType),
			Terms:        r.PreTerms,
			TermsDisplay: domain.TermsDisplay(r.PreTermsDisplay),
		},
		Warranty: domain.WarrantyBlock{
			PriceType: domain.PriceType(r.WarPriceType),
			VariantID: r.WarVariantID,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt.String,
	}
	if r.PrePaymentValue.Valid {
		v := r.PrePaymentValue.Float64
		out.Preorder.PaymentValue = &v
	}
	if r.WarEnabled.Valid {
		out.Warranty.Enabled = domain.OverrideBool(r.WarEnabled.Bool)
	}
	if r.WarPresentation.Valid {
		out.Warranty.Presentation = domain.OverrideMode(domain.Presentation(r.WarPresentation.String))
	}
	if r.WarPriceValue.Valid {
		v := r.WarPriceValue.Float64
		out.Warranty.PriceValue = &v
	}
	return out
}

const overrideCols = `shop, product_id,
  oos_enabled, oos_button_text, oos_button_color, oos_notify_form,
  oos_restock_timer, oos_restock_date, oos_recommend, oos_recommend_ids,
  pre_enabled, pre_button_text, pre_button_color, pre_end_date,
  pre_payment_type, pre_payment_value, pre_terms, pre_terms_display,
  war_enabled, war_presentation, war_price_type, war_price_value, war_variant_id,
  created_at, updated_at`

// GetProductOverride returns nil when no row exists for the pair.
func (r *SettingsRepo) GetProductOverride(shop, productID string) (*domain.ProductOverride, error) {
	if err := checkPair(shop, productID); err != nil {
		return nil, err
	}
	var row overrideRow
	err := r.db.Get(&row, `SELECT `+overrideCols+` FROM product_overrides WHERE shop = ? AND product_id = ?`, shop, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return row.toDomain(), nil
}

// UpsertOutOfStock writes the out-of-stock block for (shop, product),
// leaving the preorder and warranty columns untouched on update.
func (r *SettingsRepo) UpsertOutOfStock(shop, productID string, b domain.OutOfStockBlock) (*domain.ProductOverride, error) {
	if err := checkPair(shop, productID); err != nil {
		return nil, err
	}
	_, err := r.db.Exec(`
	  INSERT INTO product_overrides(
	    shop, product_id,
	    oos_enabled, oos_button_text, oos_button_color, oos_notify_form,
	    oos_restock_timer, oos_restock_date, oos_recommend, oos_recommend_ids,
	    updated_at
	  ) VALUES (?,?,?,?,?,?,?,?,?,?, CURRENT_TIMESTAMP)
	  ON CONFLICT(shop, product_id) DO UPDATE SET
	    oos_enabled       = excluded.oos_enabled,
	    oos_button_text   = excluded.oos_button_text,
	    oos_button_color  = excluded.oos_button_color,
	    oos_notify_form   = excluded.oos_notify_form,
	    oos_restock_timer = excluded.oos_restock_timer,
	    oos_restock_date  = excluded.oos_restock_date,
	    oos_recommend     = excluded.oos_recommend,
	    oos_recommend_ids = excluded.oos_recommend_ids,
	    updated_at        = CURRENT_TIMESTAMP
	`, shop, productID,
		b.Enabled, b.ButtonText, b.ButtonColor, b.NotifyForm,
		b.RestockTimer, nullStr(b.RestockDate), b.Recommend, strings.Join(b.RecommendIDs, ","))
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return r.GetProductOverride(shop, productID)
}

// UpsertPreorder writes the preorder block only.
func (r *SettingsRepo) UpsertPreorder(shop, productID string, b domain.PreorderBlock) (*domain.ProductOverride, error) {
	if err := checkPair(shop, productID); err != nil {
		return nil, err
	}
	if b.PaymentType == "" {
		b.PaymentType = domain.PaymentFull
	}
	if b.TermsDisplay == "" {
		b.TermsDisplay = domain.TermsInline
	}
	_, err := r.db.Exec(`
	  INSERT INTO product_overrides(
	    shop, product_id,
	    pre_enabled, pre_button_text, pre_button_color, pre_end_date,
	    pre_payment_type, pre_payment_value, pre_terms, pre_terms_display,
	    updated_at
	  ) VALUES (?,?,?,?,?,?,?,?,?,?, CURRENT_TIMESTAMP)
	  ON CONFLICT(shop, product_id) DO UPDATE SET
	    pre_enabled       = excluded.pre_enabled,
	    pre_button_text   = excluded.pre_button_text,
	    pre_button_color  = excluded.pre_button_color,
	    pre_end_date      = excluded.pre_end_date,
	    pre_payment_type  = excluded.pre_payment_type,
	    pre_payment_value = excluded.pre_payment_value,
	    pre_terms         = excluded.pre_terms,
	    pre_terms_display = excluded.pre_terms_display,
	    updated_at        = CURRENT_TIMESTAMP
	`, shop, productID,
		b.Enabled, b.ButtonText, b.ButtonColor, nullStr(b.EndDate),
		string(b.PaymentType), b.PaymentValue, b.Terms, string(b.TermsDisplay))
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return r.GetProductOverride(shop, productID)
}

// UpsertWarranty writes the warranty block only. Unset tri-state fields are
// stored as NULL, meaning "inherit the shop default".
func (r *SettingsRepo) UpsertWarranty(shop, productID string, b domain.WarrantyBlock) (*domain.ProductOverride, error) {
	if err := checkPair(shop, productID); err != nil {
		return nil, err
	}
	if b.PriceType == "" {
		b.PriceType = domain.PriceGlobalPercent
	}
	var enabled *bool
	if v, ok := b.Enabled.Get(); ok {
		enabled = &v
	}
	var pres *string
	if v, ok := b.Presentation.Get(); ok {
		s := string(v)
		pres = &s
	}
	_, err := r.db.Exec(`
	  INSERT INTO product_overrides(
	    shop, product_id,
	    war_enabled, war_presentation, war_price_type, war_price_value, war_variant_id,
	    updated_at
	  ) VALUES (?,?,?,?,?,?,?, CURRENT_TIMESTAMP)
	  ON CONFLICT(shop, product_id) DO UPDATE SET
	    war_enabled      = excluded.war_enabled,
	    war_presentation = excluded.war_presentation,
	    war_price_type   = excluded.war_price_type,
	    war_price_value  = excluded.war_price_value,
	    war_variant_id   = excluded.war_variant_id,
	    updated_at       = CURRENT_TIMESTAMP
	`, shop, productID,
		enabled, pres, string(b.PriceType), b.PriceValue, b.VariantID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return r.GetProductOverride(shop, productID)
}

// ListConfiguredProducts returns product ids that have an override row,
// most recently modified first when byRecency is set.
func (r *SettingsRepo) ListConfiguredProducts(shop string, byRecency bool) ([]string, error) {
	if strings.TrimSpace(shop) == "" {
		return nil, apperr.Validation("missing shop")
	}
	order := `product_id ASC`
	if byRecency {
		order = `datetime(COALESCE(updated_at, created_at)) DESC, id DESC`
	}
	var out []string
	err := r.db.Select(&out, `SELECT product_id FROM product_overrides WHERE shop = ? ORDER BY `+order, shop)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return out, nil
}

func checkPair(shop, productID string) error {
	if strings.TrimSpace(shop) == "" {
		return apperr.Validation("missing shop")
	}
	if strings.TrimSpace(productID) == "" {
		return apperr.Validation("missing productId")
	}
	return nil
}

func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func splitIDs(csv string) []string {
	if csv == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(csv, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
