package carrier

import (
	"regexp"
	"strings"
)

// labelRule maps a predicate over a normalized label to a carrier. Rules are
// evaluated in slice order and the first match wins.
type labelRule struct {
	key   Key
	match func(normalized string) bool
}

func contains(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

func equals(values ...string) func(string) bool {
	return func(s string) bool {
		for _, v := range values {
			if s == v {
				return true
			}
		}
		return false
	}
}

func anyOf(preds ...func(string) bool) func(string) bool {
	return func(s string) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}
}

// "ups" is a substring of "usps", so UPS must both come after USPS and exclude it.
func upsLabel(s string) bool {
	return s == "ups" || (strings.Contains(s, "ups") && !strings.Contains(s, "usps"))
}

var labelRules = []labelRule{
	{USPS, contains("usps", "unitedstatespostalservice")},
	{UPS, upsLabel},
	{FedEx, contains("fedex")},
	// DHL cascade: express variants, then e-commerce products, then the bare brand.
	{DHL, anyOf(equals("dhl", "dhlexpress"), contains("dhlexpress"))},
	{DHLECommerce, contains("dhlecommerce", "dhlglobalmail")},
	// Generic DHL labels fall back to the express key and template.
	{DHL, contains("dhl")},
	{CanadaPost, contains("canadapost", "postescanada")},
	{RoyalMail, contains("royalmail")},
	{AusPost, contains("auspost", "australiapost")},
	{YunExpress, contains("yunexpress")},
	{FourPX, contains("4px")},
	{Yanwen, contains("yanwen")},
	{PostNL, contains("postnl")},
	{DeutschePost, contains("deutschepost")},
	{HermesEvri, contains("hermes", "evri")},
	{GLS, contains("gls")},
	{TNT, contains("tnt")},
	{ChinaPost, contains("chinapost", "epacket", "ems")},
	{SFExpress, contains("sfexpress", "shunfeng")},
	{Cainiao, contains("cainiao")},
	{LaserShipOnTrac, contains("lasership", "ontrac")},
	{Amazon, contains("amazon", "amzl")},
}

// IdentifyByLabel resolves a free-text carrier label such as "UPS Ground" or
// "United States Postal Service" to a carrier key. It returns Unknown when the
// label is empty or matches nothing.
func IdentifyByLabel(label string) Key {
	n := Normalize(label)
	if n == "" {
		return Unknown
	}
	for _, r := range labelRules {
		if r.match(n) {
			return r.key
		}
	}
	return Unknown
}

type shapeRule struct {
	key      Key
	patterns []*regexp.Regexp
}

// Tracking numbers are trimmed and upper-cased before matching.
var shapeRules = []shapeRule{
	{USPS, []*regexp.Regexp{
		regexp.MustCompile(`^(92|93|94|95)\d{18,20}$`),
		regexp.MustCompile(`^[A-Z]{2}\d{9}US$`),
	}},
	{UPS, []*regexp.Regexp{
		regexp.MustCompile(`^1Z[A-Z0-9]{16,18}$`),
	}},
	{FedEx, []*regexp.Regexp{
		regexp.MustCompile(`^(\d{12}|\d{15}|\d{20}|\d{22})$`),
	}},
	{AusPost, []*regexp.Regexp{
		regexp.MustCompile(`^[A-Z]{2}\d{9}AU$`),
	}},
	{RoyalMail, []*regexp.Regexp{
		regexp.MustCompile(`^[A-Z]{2}\d{9}GB$`),
	}},
	{CanadaPost, []*regexp.Regexp{
		regexp.MustCompile(`^\d{16}$`),
	}},
}

// IdentifyByTrackingNumber guesses the carrier from the shape of a tracking
// number. It is a fallback for when the label is missing or unrecognised.
func IdentifyByTrackingNumber(number string) Key {
	tn := strings.ToUpper(strings.TrimSpace(number))
	if tn == "" {
		return Unknown
	}
	for _, r := range shapeRules {
		for _, p := range r.patterns {
			if p.MatchString(tn) {
				return r.key
			}
		}
	}
	return Unknown
}
