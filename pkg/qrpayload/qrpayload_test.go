package qrpayload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreEntryRoundTrip(t *testing.T) {
	for _, id := range []string{"17", "5", "store-09", "B&Q 1"} {
		raw := EncodeStoreEntry("https://pos.example.com", id)
		decoded := Decode(raw)
		assert.Equal(t, id, decoded.BusinessID)
		assert.Equal(t, SourceURL, decoded.Source)
	}
}

func TestEncodeStoreEntryTrimsTrailingSlash(t *testing.T) {
	assert.Equal(t,
		"https://pos.example.com/enter-store?business_id=17",
		EncodeStoreEntry("https://pos.example.com/", "17"))
}

func TestCartRoundTrip(t *testing.T) {
	payload, err := EncodeCart(&CartPayload{
		BusinessID:        "17",
		TransactionNumber: "T-17-20260314092653-0042",
		Items: []CartItem{
			{ProductID: "p1", Name: "Widget", Quantity: 2, UnitPrice: 50},
		},
	})
	require.NoError(t, err)

	decoded := Decode(payload)
	assert.Equal(t, SourceJSON, decoded.Source)
	assert.Equal(t, "17", decoded.BusinessID)
	assert.Equal(t, "T-17-20260314092653-0042", decoded.TransactionNumber)
}

func TestDecodeURLAliases(t *testing.T) {
	cases := map[string]string{
		"https://x.test/enter-store?business_id=11": "11",
		"https://x.test/s?b=22":                     "22",
		"https://x.test/s?store=33":                 "33",
	}
	for raw, want := range cases {
		d := Decode(raw)
		assert.Equal(t, want, d.BusinessID, raw)
		assert.Equal(t, SourceURL, d.Source, raw)
	}
}

func TestDecodeJSONAliases(t *testing.T) {
	cases := map[string]string{
		`{"business_id":"11"}`: "11",
		`{"businessId":"22"}`:  "22",
		`{"storeId":"33"}`:     "33",
	}
	for raw, want := range cases {
		d := Decode(raw)
		assert.Equal(t, want, d.BusinessID, raw)
		assert.Equal(t, SourceJSON, d.Source, raw)
	}
}

// Decode must never fail: malformed input falls through to raw passthrough so
// the caller can validate it against the remote service.
func TestDecodeNeverFails(t *testing.T) {
	for _, raw := range []string{
		"just-an-id",
		"{broken json",
		"https://x.test/no-params",
		`{"unrelated":"key"}`,
		"",
		"::::not a url::::",
	} {
		d := Decode(raw)
		assert.Equal(t, SourceRaw, d.Source, raw)
	}

	// Raw passthrough preserves the input unchanged.
	assert.Equal(t, "just-an-id", Decode("just-an-id").BusinessID)
}

func TestImageURL(t *testing.T) {
	got := ImageURL("https://qr.example.com/create", `{"business_id":"17"}`)
	assert.Equal(t, "https://qr.example.com/create?data=%7B%22business_id%22%3A%2217%22%7D", got)

	// Endpoints that already carry parameters get appended to.
	got = ImageURL("https://qr.example.com/create?size=200", "abc")
	assert.Equal(t, "https://qr.example.com/create?size=200&data=abc", got)
}
