package orders

import "concierge/models"

// ResolvePricing computes the display-ready pricing breakdown for a booking.
// Markup is always derived, never stored, and clamped at zero should an
// upstream ever violate the totalAmount >= basePrice invariant.
func ResolvePricing(booking models.Booking) models.PricingBreakdown {
	markup := booking.Pricing.TotalAmount - booking.Pricing.BasePrice
	if markup < 0 {
		markup = 0
	}

	breakdown := models.PricingBreakdown{
		BasePrice:   booking.Pricing.BasePrice,
		Markup:      markup,
		TotalAmount: booking.Pricing.TotalAmount,
	}

	if booking.Pricing.ExpressSurcharge != nil {
		surcharge := *booking.Pricing.ExpressSurcharge
		breakdown.ExpressSurcharge = &surcharge
		breakdown.ExpressRequested = true
	} else if booking.Config.ExpressRequested {
		// Express was requested but the source never priced the surcharge.
		// Surface the flag with no amount so callers treat it as unknown,
		// not zero.
		breakdown.ExpressRequested = true
	}

	return breakdown
}
