package carrier

import (
	"net/url"
	"strings"
)

const numberPlaceholder = "{number}"

// universalTemplate is a carrier-agnostic tracking aggregator.
const universalTemplate = "https://parcelsapp.com/en/tracking/" + numberPlaceholder

// One row per carrier. Adding a carrier means adding a Key, a row here and,
// when needed, a label or shape rule.
var urlTemplates = map[Key]string{
	USPS:            "https://tools.usps.com/go/TrackConfirmAction?qtc_tLabels1={number}",
	UPS:             "https://www.ups.com/track?loc=en_US&tracknum={number}",
	FedEx:           "https://www.fedex.com/fedextrack/?trknbr={number}",
	// Bare "DHL" labels share the express page; there is no separate generic key.
	DHL:             "https://www.dhl.com/global-en/home/tracking/tracking-express.html?submit=1&tracking-id={number}",
	DHLECommerce:    "https://www.dhl.com/us-en/home/tracking/tracking-ecommerce.html?tracking-id={number}",
	CanadaPost:      "https://www.canadapost-postescanada.ca/track-reperage/en#/search?searchFor={number}",
	RoyalMail:       "https://www.royalmail.com/track-your-item#/tracking-results/{number}",
	AusPost:         "https://auspost.com.au/mypost/track/#/details/{number}",
	YunExpress:      "https://www.yuntrack.com/Track/Detail/{number}",
	FourPX:          "https://track.4px.com/#/result/0/{number}",
	Yanwen:          "https://track.yw56.com.cn/en/querydel?nums={number}",
	PostNL:          "https://postnl.nl/tracktrace/?B={number}",
	DeutschePost:    "https://www.deutschepost.de/de/s/sendungsverfolgung.html?piececode={number}",
	HermesEvri:      "https://www.evri.com/track-a-parcel/{number}",
	GLS:             "https://gls-group.com/track/{number}",
	TNT:             "https://www.tnt.com/express/en_us/site/tracking.html?searchType=con&cons={number}",
	ChinaPost:       "https://parcelsapp.com/en/tracking/{number}",
	SFExpress:       "https://www.sf-express.com/us/en/dynamic_function/waybill/#search/bill-number/{number}",
	Cainiao:         "https://global.cainiao.com/detail.htm?mailNoList={number}",
	LaserShipOnTrac: "https://www.ontrac.com/tracking?number={number}",
	Amazon:          "https://track.amazon.com/tracking/{number}",
}

// TrackingURL returns the carrier's own tracking page for number. ok is false
// for Unknown, for keys without a template, and for an empty number.
func TrackingURL(key Key, number string) (trackingURL string, ok bool) {
	tmpl, found := urlTemplates[key]
	if !found || number == "" {
		return "", false
	}
	return expand(tmpl, number), true
}

// UniversalURL returns the aggregator tracking page for number, or "" when
// number is empty.
func UniversalURL(number string) string {
	if number == "" {
		return ""
	}
	return expand(universalTemplate, number)
}

func expand(tmpl, number string) string {
	return strings.ReplaceAll(tmpl, numberPlaceholder, escape(number))
}

// componentUnescaper undoes QueryEscape for the characters a URI component
// may carry verbatim: ! ' ( ) * and space as %20.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escape percent-encodes a tracking number for use in either a path segment
// or a query value. Letters, digits and -_.!~*'() pass through unchanged.
func escape(number string) string {
	return componentUnescaper.Replace(url.QueryEscape(number))
}
