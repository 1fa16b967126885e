package forms_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"restockly/internal/apperr"
	"restockly/internal/domain"
	"restockly/internal/http/forms"
)

func TestCheckboxPresenceIsTrue(t *testing.T) {
	vals := url.Values{
		"productId": {"gid://shopify/Product/1"},
		"enabled":   {"on"},
		// notifyForm absent: must decode false
		"restockTimer": {"1"}, // any present value counts as checked
	}
	pid, b, err := forms.DecodeOutOfStock(vals)
	require.NoError(t, err)
	require.Equal(t, "gid://shopify/Product/1", pid)
	require.True(t, b.Enabled)
	require.False(t, b.NotifyForm)
	require.True(t, b.RestockTimer)
}

func TestInvalidDateCoercesToAbsent(t *testing.T) {
	vals := url.Values{
		"productId":   {"gid://shopify/Product/1"},
		"restockDate": {"not-a-date"},
	}
	_, b, err := forms.DecodeOutOfStock(vals)
	require.NoError(t, err, "bad dates are coerced, never rejected")
	require.Empty(t, b.RestockDate)

	vals.Set("restockDate", "2026-09-15")
	_, b, err = forms.DecodeOutOfStock(vals)
	require.NoError(t, err)
	require.Equal(t, "2026-09-15T00:00:00Z", b.RestockDate)

	vals.Set("restockDate", "2026-09-15T10:30:00+02:00")
	_, b, err = forms.DecodeOutOfStock(vals)
	require.NoError(t, err)
	require.Equal(t, "2026-09-15T08:30:00Z", b.RestockDate)
}

func TestRecommendIDsSplit(t *testing.T) {
	vals := url.Values{
		"productId":    {"gid://shopify/Product/1"},
		"recommendIds": {"gid://shopify/Product/2, gid://shopify/Product/3,,"},
	}
	_, b, err := forms.DecodeOutOfStock(vals)
	require.NoError(t, err)
	require.Equal(t, []string{"gid://shopify/Product/2", "gid://shopify/Product/3"}, b.RecommendIDs)
}

func TestDecodePreorder(t *testing.T) {
	vals := url.Values{
		"productId":    {"gid://shopify/Product/1"},
		"enabled":      {"on"},
		"paymentType":  {"PARTIAL_PERCENTAGE"},
		"paymentValue": {"25"},
		"termsDisplay": {"POPUP"},
		"endDate":      {"2026-12-01"},
	}
	pid, b, err := forms.DecodePreorder(vals)
	require.NoError(t, err)
	require.Equal(t, "gid://shopify/Product/1", pid)
	require.True(t, b.Enabled)
	require.Equal(t, domain.PaymentPartialPercent, b.PaymentType)
	require.NotNil(t, b.PaymentValue)
	require.Equal(t, 25.0, *b.PaymentValue)
	require.Equal(t, domain.TermsPopup, b.TermsDisplay)
	require.Equal(t, "2026-12-01T00:00:00Z", b.EndDate)
}

func TestDecodeWarrantyTriState(t *testing.T) {
	// Absent field: inherit
	_, b, err := forms.DecodeWarranty(url.Values{"productId": {"gid://shopify/Product/1"}})
	require.NoError(t, err)
	_, set := b.Enabled.Get()
	require.False(t, set)

	// Explicit false: override
	_, b, err = forms.DecodeWarranty(url.Values{
		"productId": {"gid://shopify/Product/1"},
		"enabled":   {"false"},
	})
	require.NoError(t, err)
	v, set := b.Enabled.Get()
	require.True(t, set)
	require.False(t, v)

	// Garbage is a validation error, not a silent inherit
	_, _, err = forms.DecodeWarranty(url.Values{
		"productId": {"gid://shopify/Product/1"},
		"enabled":   {"yes"},
	})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDecodeDefaultsIsPartial(t *testing.T) {
	p, err := forms.DecodeDefaults(url.Values{"warrantyPercentage": {"12.5"}})
	require.NoError(t, err)
	require.Nil(t, p.WarrantyEnabled, "omitted fields stay out of the patch")
	require.NotNil(t, p.WarrantyPercentage)
	require.Equal(t, 12.5, *p.WarrantyPercentage)

	_, err = forms.DecodeDefaults(url.Values{"warrantyPresentation": {"SIDEBAR"}})
	require.ErrorIs(t, err, apperr.ErrValidation)
}
