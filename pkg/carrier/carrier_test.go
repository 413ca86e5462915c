package carrier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/ordertrack/pkg/carrier"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"UPS Ground", "upsground"},
		{"DHL-eCommerce!", "dhlecommerce"},
		{"  U.S.P.S. ", "usps"},
		{"4PX Express", "4pxexpress"},
		{"", ""},
		{"ÉMS", "ms"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, carrier.Normalize(tt.in))
		})
	}
}

func TestIdentifyByLabel(t *testing.T) {
	tests := []struct {
		label string
		want  carrier.Key
	}{
		{"USPS", carrier.USPS},
		{"United States Postal Service", carrier.USPS},
		{"U.S.P.S.", carrier.USPS},
		{"UPS", carrier.UPS},
		{"UPS Ground", carrier.UPS},
		{"UPS Mail Innovations", carrier.UPS},
		{"FedEx", carrier.FedEx},
		{"FedEx SmartPost", carrier.FedEx},
		{"DHL", carrier.DHL},
		{"DHL Express", carrier.DHL},
		{"DHL eCommerce", carrier.DHLECommerce},
		{"DHL Global Mail", carrier.DHLECommerce},
		{"DHL Parcel UK", carrier.DHL},
		{"Canada Post", carrier.CanadaPost},
		{"Postes Canada", carrier.CanadaPost},
		{"Royal Mail", carrier.RoyalMail},
		{"Australia Post", carrier.AusPost},
		{"AusPost", carrier.AusPost},
		{"YunExpress", carrier.YunExpress},
		{"4PX", carrier.FourPX},
		{"Yanwen", carrier.Yanwen},
		{"PostNL International", carrier.PostNL},
		{"Deutsche Post", carrier.DeutschePost},
		{"Hermes", carrier.HermesEvri},
		{"Evri", carrier.HermesEvri},
		{"GLS", carrier.GLS},
		{"TNT", carrier.TNT},
		{"China Post", carrier.ChinaPost},
		{"ePacket", carrier.ChinaPost},
		{"China EMS", carrier.ChinaPost},
		{"SF Express", carrier.SFExpress},
		{"Shunfeng", carrier.SFExpress},
		{"Cainiao", carrier.Cainiao},
		{"LaserShip", carrier.LaserShipOnTrac},
		{"OnTrac", carrier.LaserShipOnTrac},
		{"Amazon Logistics", carrier.Amazon},
		{"AMZL_US", carrier.Amazon},
		{"Some Local Courier", carrier.Unknown},
		{"", carrier.Unknown},
		{"---", carrier.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, carrier.IdentifyByLabel(tt.label))
		})
	}
}

func TestIdentifyByLabel_USPSNeverMatchesUPS(t *testing.T) {
	for _, label := range []string{"USPS", "usps priority", "USPS First Class", "Shipped via USPS"} {
		assert.Equal(t, carrier.USPS, carrier.IdentifyByLabel(label), label)
	}
}

func TestIdentifyByLabel_SameKeyForSpellings(t *testing.T) {
	assert.Equal(t,
		carrier.IdentifyByLabel("USPS"),
		carrier.IdentifyByLabel("United States Postal Service"),
	)
}

func TestIdentifyByTrackingNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   carrier.Key
	}{
		{"usps 22 digits", "9400111899223817476923", carrier.USPS},
		{"usps 20 digits", "92001901755477000000", carrier.USPS},
		{"usps s10", "EZ123456789US", carrier.USPS},
		{"usps s10 lower with spaces", "  ez123456789us ", carrier.USPS},
		{"ups", "1Z999AA10123456784", carrier.UPS},
		{"ups lower", "1z999aa10123456784", carrier.UPS},
		{"ups 18 tail", "1Z999AA1012345678412", carrier.UPS},
		{"fedex 12", "123456789012", carrier.FedEx},
		{"fedex 15", "123456789012345", carrier.FedEx},
		{"fedex 20", "12345678901234567890", carrier.FedEx},
		{"fedex 22", "1234567890123456789012", carrier.FedEx},
		{"auspost", "RR123456789AU", carrier.AusPost},
		{"royal mail", "AB123456789GB", carrier.RoyalMail},
		{"canada post", "1234567890123456", carrier.CanadaPost},
		{"empty", "", carrier.Unknown},
		{"blank", "   ", carrier.Unknown},
		{"garbage", "ABC-123", carrier.Unknown},
		{"usps prefix too long", "94001118992238174769231", carrier.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, carrier.IdentifyByTrackingNumber(tt.number))
		})
	}
}

func TestIdentifyByTrackingNumber_UPSNeverMatchesOtherRules(t *testing.T) {
	for _, number := range []string{"1Z999AA10123456784", "1Z12345E0205271688", "1ZA1B2C3D4E5F6G7H8"} {
		key := carrier.IdentifyByTrackingNumber(number)
		assert.Equal(t, carrier.UPS, key, number)
		assert.NotEqual(t, carrier.USPS, key)
		assert.NotEqual(t, carrier.FedEx, key)
	}
}

func TestTrackingURL(t *testing.T) {
	url, ok := carrier.TrackingURL(carrier.UPS, "1Z999AA10123456784")
	require.True(t, ok)
	assert.Equal(t, "https://www.ups.com/track?loc=en_US&tracknum=1Z999AA10123456784", url)

	url, ok = carrier.TrackingURL(carrier.USPS, "EZ123456789US")
	require.True(t, ok)
	assert.Equal(t, "https://tools.usps.com/go/TrackConfirmAction?qtc_tLabels1=EZ123456789US", url)

	url, ok = carrier.TrackingURL(carrier.DHLECommerce, "GM123")
	require.True(t, ok)
	assert.Equal(t, "https://www.dhl.com/us-en/home/tracking/tracking-ecommerce.html?tracking-id=GM123", url)
}

func TestTrackingURL_EncodesNumber(t *testing.T) {
	url, ok := carrier.TrackingURL(carrier.RoyalMail, "AB 12/3&x=1")
	require.True(t, ok)
	assert.Equal(t, "https://www.royalmail.com/track-your-item#/tracking-results/AB%2012%2F3%26x%3D1", url)
}

func TestTrackingURL_LeavesComponentSafeCharacters(t *testing.T) {
	assert.Equal(t, "https://parcelsapp.com/en/tracking/AB(12)*'!~", carrier.UniversalURL("AB(12)*'!~"))
	assert.Equal(t, "https://parcelsapp.com/en/tracking/a-b_c.d", carrier.UniversalURL("a-b_c.d"))
	assert.Equal(t, "https://parcelsapp.com/en/tracking/%2B%23%3F%25", carrier.UniversalURL("+#?%"))

	url, ok := carrier.TrackingURL(carrier.DHL, "JD(01)")
	require.True(t, ok)
	assert.Equal(t, "https://www.dhl.com/global-en/home/tracking/tracking-express.html?submit=1&tracking-id=JD(01)", url)
}

func TestTrackingURL_Absent(t *testing.T) {
	_, ok := carrier.TrackingURL(carrier.Unknown, "1Z999AA10123456784")
	assert.False(t, ok)

	_, ok = carrier.TrackingURL(carrier.Key("pigeon"), "1Z999AA10123456784")
	assert.False(t, ok)

	_, ok = carrier.TrackingURL(carrier.UPS, "")
	assert.False(t, ok)
}

func TestTrackingURL_Deterministic(t *testing.T) {
	first, _ := carrier.TrackingURL(carrier.FedEx, "1234 5678 9012")
	second, _ := carrier.TrackingURL(carrier.FedEx, "1234 5678 9012")
	assert.Equal(t, first, second)
}

func TestTrackingURL_EveryKeyHasTemplate(t *testing.T) {
	for _, key := range carrier.Keys() {
		t.Run(key.String(), func(t *testing.T) {
			assert.True(t, key.Known())
			url, ok := carrier.TrackingURL(key, "X1")
			require.True(t, ok)
			assert.Contains(t, url, "X1")
		})
	}
	assert.False(t, carrier.Unknown.Known())
}

func TestUniversalURL(t *testing.T) {
	assert.Equal(t, "https://parcelsapp.com/en/tracking/EZ123456789US", carrier.UniversalURL("EZ123456789US"))
	assert.Equal(t, "https://parcelsapp.com/en/tracking/A%20B", carrier.UniversalURL("A B"))
	assert.Empty(t, carrier.UniversalURL(""))
}
