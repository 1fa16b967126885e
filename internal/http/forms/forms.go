// Package forms is the single decode boundary between the stringly-typed
// admin form encoding and the typed domain blocks. Booleans are
// presence-as-true (an absent checkbox is false), dates are ISO-8601 with
// unparseable values coerced to absent, and the warranty tri-state decodes
// from ""/"true"/"false".
package forms

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/schema"

	"restockly/internal/apperr"
	"restockly/internal/domain"
)

// Checkbox decodes to true whenever the field is present, whatever its
// value. Absent fields stay false.
type Checkbox bool

// Date is an RFC 3339 (or bare yyyy-mm-dd) timestamp normalized to RFC 3339
// UTC. Invalid input coerces to empty rather than rejecting the form.
type Date string

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(Checkbox(false), func(string) reflect.Value {
		return reflect.ValueOf(Checkbox(true))
	})
	d.RegisterConverter(Date(""), func(s string) reflect.Value {
		return reflect.ValueOf(parseDate(s))
	})
	return d
}

func parseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Date(t.UTC().Format(time.RFC3339))
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return Date(t.UTC().Format(time.RFC3339))
	}
	return ""
}

type OutOfStockForm struct {
	ProductID    string   `schema:"productId"`
	Enabled      Checkbox `schema:"enabled"`
	ButtonText   string   `schema:"buttonText"`
	ButtonColor  string   `schema:"buttonColor"`
	NotifyForm   Checkbox `schema:"notifyForm"`
	RestockTimer Checkbox `schema:"restockTimer"`
	RestockDate  Date     `schema:"restockDate"`
	Recommend    Checkbox `schema:"recommend"`
	RecommendIDs string   `schema:"recommendIds"` // comma-delimited gids
}

// DecodeOutOfStock maps a form post onto the out-of-stock block.
func DecodeOutOfStock(vals url.Values) (string, domain.OutOfStockBlock, error) {
	var f OutOfStockForm
	if err := decoder.Decode(&f, vals); err != nil {
		return "", domain.OutOfStockBlock{}, apperr.Validation("bad form: %v", err)
	}
	b := domain.OutOfStockBlock{
		Enabled:      bool(f.Enabled),
		ButtonText:   strings.TrimSpace(f.ButtonText),
		ButtonColor:  strings.TrimSpace(f.ButtonColor),
		NotifyForm:   bool(f.NotifyForm),
		RestockTimer: bool(f.RestockTimer),
		RestockDate:  string(f.RestockDate),
		Recommend:    bool(f.Recommend),
		RecommendIDs: splitCSV(f.RecommendIDs),
	}
	return f.ProductID, b, nil
}

type PreorderForm struct {
	ProductID    string   `schema:"productId"`
	Enabled      Checkbox `schema:"enabled"`
	ButtonText   string   `schema:"buttonText"`
	ButtonColor  string   `schema:"buttonColor"`
	EndDate      Date     `schema:"endDate"`
	PaymentType  string   `schema:"paymentType"`
	PaymentValue *float64 `schema:"paymentValue"`
	Terms        string   `schema:"terms"`
	TermsDisplay string   `schema:"termsDisplay"`
}

func DecodePreorder(vals url.Values) (string, domain.PreorderBlock, error) {
	var f PreorderForm
	if err := decoder.Decode(&f, vals); err != nil {
		return "", domain.PreorderBlock{}, apperr.Validation("bad form: %v", err)
	}
	b := domain.PreorderBlock{
		Enabled:      bool(f.Enabled),
		ButtonText:   strings.TrimSpace(f.ButtonText),
		ButtonColor:  strings.TrimSpace(f.ButtonColor),
		EndDate:      string(f.EndDate),
		PaymentType:  domain.PaymentType(strings.TrimSpace(f.PaymentType)),
		PaymentValue: f.PaymentValue,
		Terms:        f.Terms,
		TermsDisplay: domain.TermsDisplay(strings.TrimSpace(f.TermsDisplay)),
	}
	return f.ProductID, b, nil
}

type WarrantyForm struct {
	ProductID    string   `schema:"productId"`
	Enabled      string   `schema:"enabled"`      // ""|"true"|"false"
	Presentation string   `schema:"presentation"` // ""|"POPUP"|"EMBED"
	PriceType    string   `schema:"priceType"`
	PriceValue   *float64 `schema:"priceValue"`
	VariantID    string   `schema:"variantId"`
}

func DecodeWarranty(vals url.Values) (string, domain.WarrantyBlock, error) {
	var f WarrantyForm
	if err := decoder.Decode(&f, vals); err != nil {
		return "", domain.WarrantyBlock{}, apperr.Validation("bad form: %v", err)
	}
	b := domain.WarrantyBlock{
		PriceType:  domain.PriceType(strings.TrimSpace(f.PriceType)),
		PriceValue: f.PriceValue,
		VariantID:  strings.TrimSpace(f.VariantID),
	}
	switch strings.TrimSpace(f.Enabled) {
	case "":
		b.Enabled = domain.InheritBool()
	case "true":
		b.Enabled = domain.OverrideBool(true)
	case "false":
		b.Enabled = domain.OverrideBool(false)
	default:
		return "", domain.WarrantyBlock{}, apperr.Validation("enabled must be empty, true or false")
	}
	switch p := domain.Presentation(strings.TrimSpace(f.Presentation)); p {
	case "":
		b.Presentation = domain.InheritMode()
	case domain.PresentationPopup, domain.PresentationEmbed:
		b.Presentation = domain.OverrideMode(p)
	default:
		return "", domain.WarrantyBlock{}, apperr.Validation("unknown presentation %q", f.Presentation)
	}
	return f.ProductID, b, nil
}

// DecodeDefaults builds a partial patch: only keys present in the form make
// it into the patch, so an omitted field never clears a stored value.
func DecodeDefaults(vals url.Values) (domain.DefaultsPatch, error) {
	var p domain.DefaultsPatch
	if vals.Has("warrantyEnabled") {
		v := strings.TrimSpace(vals.Get("warrantyEnabled")) == "true"
		p.WarrantyEnabled = &v
	}
	if vals.Has("warrantyPresentation") {
		switch m := domain.Presentation(strings.TrimSpace(vals.Get("warrantyPresentation"))); m {
		case domain.PresentationPopup, domain.PresentationEmbed:
			p.WarrantyPresentation = &m
		default:
			return domain.DefaultsPatch{}, apperr.Validation("unknown presentation %q", vals.Get("warrantyPresentation"))
		}
	}
	if vals.Has("warrantyPercentage") {
		f, err := strconv.ParseFloat(strings.TrimSpace(vals.Get("warrantyPercentage")), 64)
		if err != nil {
			return domain.DefaultsPatch{}, apperr.Validation("warranty percentage must be a number")
		}
		p.WarrantyPercentage = &f
	}
	if vals.Has("warrantyDescription") {
		v := vals.Get("warrantyDescription")
		p.WarrantyDescription = &v
	}
	if vals.Has("warrantyProductId") {
		v := strings.TrimSpace(vals.Get("warrantyProductId"))
		p.WarrantyProductID = &v
	}
	return p, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
