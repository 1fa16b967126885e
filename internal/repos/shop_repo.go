package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"restockly/internal/apperr"
	"restockly/internal/secrets"
)

// ShopRepo stores installed shops and their catalog access tokens. Tokens
// are sealed before insert and never leave the process in plaintext except
// toward the catalog API.
type ShopRepo struct {
	db  *sqlx.DB
	box *secrets.Box
}

func NewShopRepo(db *sqlx.DB, box *secrets.Box) *ShopRepo { return &ShopRepo{db: db, box: box} }

// Install registers a shop, replacing any previous token.
func (r *ShopRepo) Install(shop, token string) error {
	cipher, err := r.box.Seal(token)
	if err != nil {
		return apperr.Storage(err)
	}
	_, err = r.db.Exec(`
	  INSERT INTO shops(shop, token_cipher) VALUES(?, ?)
	  ON CONFLICT(shop) DO UPDATE SET token_cipher = excluded.token_cipher
	`, shop, cipher)
	if err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// Token returns the decrypted catalog token for a shop.
func (r *ShopRepo) Token(shop string) (string, error) {
	var cipher []byte
	err := r.db.Get(&cipher, `SELECT token_cipher FROM shops WHERE shop = ?`, shop)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.Validation("shop %q is not installed", shop)
	}
	if err != nil {
		return "", apperr.Storage(err)
	}
	tok, err := r.box.Open(cipher)
	if err != nil {
		return "", apperr.Integrity("shop token for %q cannot be decrypted", shop)
	}
	return tok, nil
}

func (r *ShopRepo) Uninstall(shop string) error {
	if _, err := r.db.Exec(`DELETE FROM shops WHERE shop = ?`, shop); err != nil {
		return apperr.Storage(err)
	}
	return nil
}
