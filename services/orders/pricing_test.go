package orders_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concierge/models"
	"concierge/services/orders"
)

func TestResolvePricing(t *testing.T) {
	t.Run("markup derived from amounts", func(t *testing.T) {
		booking := models.Booking{Pricing: models.Pricing{BasePrice: 40, TotalAmount: 55}}
		breakdown := orders.ResolvePricing(booking)

		assert.Equal(t, 40.0, breakdown.BasePrice)
		assert.Equal(t, 15.0, breakdown.Markup)
		assert.Equal(t, 55.0, breakdown.TotalAmount)
		assert.Nil(t, breakdown.ExpressSurcharge)
		assert.False(t, breakdown.ExpressRequested)
	})

	t.Run("markup clamped at zero", func(t *testing.T) {
		booking := models.Booking{Pricing: models.Pricing{BasePrice: 60, TotalAmount: 50}}
		breakdown := orders.ResolvePricing(booking)
		assert.Equal(t, 0.0, breakdown.Markup)
	})

	t.Run("surcharge surfaced verbatim", func(t *testing.T) {
		surcharge := 12.5
		booking := models.Booking{Pricing: models.Pricing{BasePrice: 40, TotalAmount: 65, ExpressSurcharge: &surcharge}}
		breakdown := orders.ResolvePricing(booking)

		require.NotNil(t, breakdown.ExpressSurcharge)
		assert.Equal(t, 12.5, *breakdown.ExpressSurcharge)
		assert.True(t, breakdown.ExpressRequested)
	})

	t.Run("express requested without priced surcharge stays unknown", func(t *testing.T) {
		booking := models.Booking{
			Pricing: models.Pricing{BasePrice: 40, TotalAmount: 55},
			Config:  models.BookingConfig{ExpressRequested: true},
		}
		breakdown := orders.ResolvePricing(booking)

		assert.Nil(t, breakdown.ExpressSurcharge)
		assert.True(t, breakdown.ExpressRequested)
	})
}
