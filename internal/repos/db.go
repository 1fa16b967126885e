package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Shops: one row per installed storefront, catalog token encrypted at rest
CREATE TABLE IF NOT EXISTS shops(
  shop TEXT PRIMARY KEY,
  token_cipher BLOB,
  installed_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Shop-level warranty defaults
CREATE TABLE IF NOT EXISTS shop_defaults(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  shop TEXT NOT NULL UNIQUE,
  warranty_enabled INTEGER NOT NULL DEFAULT 0,
  warranty_presentation TEXT NOT NULL DEFAULT 'POPUP' CHECK (warranty_presentation IN ('POPUP','EMBED')),
  warranty_percentage REAL NOT NULL DEFAULT 10.0,
  warranty_description TEXT NOT NULL DEFAULT '',
  warranty_product_id TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

-- Per-product overrides: three independent feature blocks, one row per (shop, product)
CREATE TABLE IF NOT EXISTS product_overrides(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  shop TEXT NOT NULL,
  product_id TEXT NOT NULL,

  oos_enabled INTEGER NOT NULL DEFAULT 0,
  oos_button_text TEXT NOT NULL DEFAULT '',
  oos_button_color TEXT NOT NULL DEFAULT '',
  oos_notify_form INTEGER NOT NULL DEFAULT 0,
  oos_restock_timer INTEGER NOT NULL DEFAULT 0,
  oos_restock_date TEXT,
  oos_recommend INTEGER NOT NULL DEFAULT 0,
  oos_recommend_ids TEXT NOT NULL DEFAULT '',

  pre_enabled INTEGER NOT NULL DEFAULT 0,
  pre_button_text TEXT NOT NULL DEFAULT '',
  pre_button_color TEXT NOT NULL DEFAULT '',
  pre_end_date TEXT,
  pre_payment_type TEXT NOT NULL DEFAULT 'FULL' CHECK (pre_payment_type IN ('FULL','PARTIAL_PERCENTAGE','PARTIAL_FIXED')),
  pre_payment_value REAL,
  pre_terms TEXT NOT NULL DEFAULT '',
  pre_terms_display TEXT NOT NULL DEFAULT 'INLINE' CHECK (pre_terms_display IN ('INLINE','POPUP')),

  war_enabled INTEGER,      -- NULL = inherit shop default
  war_presentation TEXT,    -- NULL = inherit shop default
  war_price_type TEXT NOT NULL DEFAULT 'GLOBAL_PERCENTAGE' CHECK (war_price_type IN ('GLOBAL_PERCENTAGE','PRODUCT_PERCENTAGE','PRODUCT_FIXED')),
  war_price_value REAL,
  war_variant_id TEXT NOT NULL DEFAULT '',

  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT,
  UNIQUE(shop, product_id)
);
CREATE INDEX IF NOT EXISTS idx_overrides_shop_updated ON product_overrides(shop, updated_at);

-- Back-in-stock subscriptions; duplicates per (shop, product, email) permitted
CREATE TABLE IF NOT EXISTS subscriptions(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  public_id TEXT NOT NULL UNIQUE,
  shop TEXT NOT NULL,
  product_id TEXT NOT NULL,
  email TEXT NOT NULL,
  name TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING','NOTIFIED','ERROR')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  notified_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_subs_shop_product        ON subscriptions(shop, product_id);
CREATE INDEX IF NOT EXISTS idx_subs_shop_product_status ON subscriptions(shop, product_id, status);
`
	_, err := db.Exec(schema)
	return err
}

// SeedDevShop registers a shop + token on startup for local development.
// Idempotent; safe to run every start.
func SeedDevShop(shops *ShopRepo, shop, token string) error {
	if shop == "" || token == "" {
		return nil
	}
	log.Printf("[seed] registering dev shop %s", shop)
	return shops.Install(shop, token)
}
