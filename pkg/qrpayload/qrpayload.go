package qrpayload

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Source identifies which decode path recognized a scanned payload.
type Source string

const (
	SourceURL  Source = "url"
	SourceJSON Source = "json"
	SourceRaw  Source = "raw"
)

// Query parameter aliases accepted on scanned store-entry URLs. Payloads come
// from heterogeneous QR generators, not only our own.
var urlAliases = []string{"business_id", "b", "store"}

// JSON keys accepted on scanned cart payloads.
var jsonAliases = []string{"business_id", "businessId", "storeId"}

// CartItem is one line of an encoded cart payload.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// CartPayload is the compact structure embedded in a cart-handoff QR code.
type CartPayload struct {
	BusinessID        string     `json:"business_id"`
	TransactionNumber string     `json:"tn"`
	Items             []CartItem `json:"items"`
}

// Decoded is the result of decoding a scanned payload. Decode never fails:
// unrecognized input comes back as-is with SourceRaw and the caller validates
// it against the remote transaction service.
type Decoded struct {
	BusinessID        string `json:"business_id"`
	TransactionNumber string `json:"tn,omitempty"`
	Source            Source `json:"source"`
}

// EncodeStoreEntry builds the store-entry URL embedded in a storefront QR code.
func EncodeStoreEntry(origin, businessID string) string {
	return strings.TrimRight(origin, "/") + "/enter-store?business_id=" + url.QueryEscape(businessID)
}

// EncodeCart serializes a cart payload to its canonical JSON form.
func EncodeCart(p *CartPayload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ImageURL builds the request to the external QR image rendering endpoint with
// the payload passed as a URL-encoded parameter. The codec stays agnostic of
// how the image itself is produced.
func ImageURL(endpoint, payload string) string {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + "data=" + url.QueryEscape(payload)
}

// Decode extracts a business reference from a scanned payload. Attempts, in
// order: URL with a recognized query parameter, JSON with a recognized key,
// then raw passthrough.
func Decode(raw string) Decoded {
	raw = strings.TrimSpace(raw)

	if d, ok := decodeURL(raw); ok {
		return d
	}
	if d, ok := decodeJSON(raw); ok {
		return d
	}
	return Decoded{BusinessID: raw, Source: SourceRaw}
}

func decodeURL(raw string) (Decoded, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Decoded{}, false
	}
	q := u.Query()
	for _, alias := range urlAliases {
		if v := q.Get(alias); v != "" {
			return Decoded{BusinessID: v, Source: SourceURL}, true
		}
	}
	return Decoded{}, false
}

func decodeJSON(raw string) (Decoded, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return Decoded{}, false
	}
	d := Decoded{Source: SourceJSON}
	for _, alias := range jsonAliases {
		if v, ok := obj[alias]; ok {
			var s string
			if err := json.Unmarshal(v, &s); err == nil && s != "" {
				d.BusinessID = s
				break
			}
		}
	}
	if d.BusinessID == "" {
		return Decoded{}, false
	}
	if v, ok := obj["tn"]; ok {
		_ = json.Unmarshal(v, &d.TransactionNumber)
	}
	return d, true
}
