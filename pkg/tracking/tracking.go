// Package tracking turns a raw fulfillment tracking entry into the links a
// support agent can hand to a customer.
package tracking

import (
	"github.com/tournevent/ordertrack/pkg/carrier"
)

// Source records how the carrier URL was derived.
type Source string

const (
	SourceNone  Source = "none"
	SourceLabel Source = "label"
	SourceShape Source = "shape"
)

// Result is the normalized tracking view of a single fulfillment entry. Empty
// strings mean absent. CarrierURL and UniversalURL are only set when Number is.
type Result struct {
	Number       string      `json:"number,omitempty"`
	Carrier      string      `json:"carrier,omitempty"` // raw label as received from the order platform
	Key          carrier.Key `json:"carrierKey,omitempty"`
	Source       Source      `json:"source"`
	CarrierURL   string      `json:"carrierUrl,omitempty"`
	UniversalURL string      `json:"universalUrl,omitempty"`
}

// HasNumber reports whether the entry carried a tracking number.
func (r Result) HasNumber() bool {
	return r.Number != ""
}

// Resolve builds a Result from a tracking number and the carrier label the
// platform reported. The label is tried first; when it is missing, unknown or
// has no template, the shape of the number is used instead. The universal URL
// is always built when a number is present.
func Resolve(number, label string) Result {
	res := Result{
		Carrier: label,
		Key:     carrier.Unknown,
		Source:  SourceNone,
	}
	if number == "" {
		return res
	}
	res.Number = number

	if key := carrier.IdentifyByLabel(label); key != carrier.Unknown {
		if u, ok := carrier.TrackingURL(key, number); ok {
			res.Key, res.Source, res.CarrierURL = key, SourceLabel, u
		}
	}
	if res.CarrierURL == "" {
		if key := carrier.IdentifyByTrackingNumber(number); key != carrier.Unknown {
			if u, ok := carrier.TrackingURL(key, number); ok {
				res.Key, res.Source, res.CarrierURL = key, SourceShape, u
			}
		}
	}

	res.UniversalURL = carrier.UniversalURL(number)
	return res
}
