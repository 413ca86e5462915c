// Package carrier identifies shipping carriers from free-text labels or tracking
// number shapes and builds the public tracking URLs for them.
package carrier

import (
	"strings"
)

// Key is the canonical identifier of a carrier, independent of how the order
// platform spelled its name.
type Key string

const (
	Unknown         Key = "unknown"
	USPS            Key = "usps"
	UPS             Key = "ups"
	FedEx           Key = "fedex"
	DHL             Key = "dhl"
	DHLECommerce    Key = "dhl-ecommerce"
	CanadaPost      Key = "canada-post"
	RoyalMail       Key = "royal-mail"
	AusPost         Key = "auspost"
	YunExpress      Key = "yun-express"
	FourPX          Key = "4px"
	Yanwen          Key = "yanwen"
	PostNL          Key = "postnl"
	DeutschePost    Key = "deutsche-post"
	HermesEvri      Key = "hermes-evri"
	GLS             Key = "gls"
	TNT             Key = "tnt"
	ChinaPost       Key = "china-post"
	SFExpress       Key = "sf-express"
	Cainiao         Key = "cainiao"
	LaserShipOnTrac Key = "lasership-ontrac"
	Amazon          Key = "amazon"
)

// Keys returns every known carrier key, excluding Unknown.
func Keys() []Key {
	return []Key{
		USPS, UPS, FedEx, DHL, DHLECommerce, CanadaPost, RoyalMail, AusPost,
		YunExpress, FourPX, Yanwen, PostNL, DeutschePost, HermesEvri, GLS, TNT,
		ChinaPost, SFExpress, Cainiao, LaserShipOnTrac, Amazon,
	}
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return string(k)
}

// Known reports whether k is one of the canonical carriers.
func (k Key) Known() bool {
	_, ok := urlTemplates[k]
	return ok
}

// Normalize lower-cases a carrier label and drops every character outside
// [a-z0-9], so "UPS Ground" becomes "upsground".
func Normalize(label string) string {
	lower := strings.ToLower(label)
	var b strings.Builder
	b.Grow(len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}
