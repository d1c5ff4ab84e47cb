package quote

import (
	"encoding/json"

	"github.com/pkg/errors"

	"logbid/internal/domain/entity"
)

// Dimensions describes the cargo for air offers. Informational only, never
// part of the price arithmetic.
type Dimensions struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Unit   string  `json:"unit"`
}

// AirAdditionalFees groups the per-leg charges of an air offer.
type AirAdditionalFees struct {
	Screening        Amount `json:"screening"`
	Fuel             Amount `json:"fuel"`
	AirwayBill       Amount `json:"airway_bill"`
	OriginCosts      Amount `json:"origin_costs"`
	DestinationCosts Amount `json:"destination_costs"`
	CancellationFee  Amount `json:"cancellation_fee"`
}

// AirOtherFees groups the remaining charges of an air offer. CollectFee is a
// percentage carried as text and settled out of band, so it is stored but
// never summed.
type AirOtherFees struct {
	CollectFee string `json:"collect_fee"`
	OtherFee   Amount `json:"other_fee"`
}

// AirDetails is the fee breakdown an agent fills in for an air offer.
type AirDetails struct {
	FreightValue Amount            `json:"freight_value"`
	Dimensions   Dimensions        `json:"dimensions"`
	Additional   AirAdditionalFees `json:"additional_fees"`
	Other        AirOtherFees      `json:"other_fees"`
}

// MaritimeOriginFees groups the origin-port charges of a maritime offer.
type MaritimeOriginFees struct {
	SecurityManifest Amount `json:"security_manifest"`
	Handling         Amount `json:"handling"`
}

// MaritimeDestinationFees groups the destination-port charges. CollectFee is
// a percentage carried as text, stored but never summed.
type MaritimeDestinationFees struct {
	Handling   Amount `json:"handling"`
	BLEmission Amount `json:"bl_emission"`
	Agency     Amount `json:"agency"`
	CollectFee string `json:"collect_fee"`
}

// MaritimeOtherFees groups the surcharge line items of a maritime offer.
type MaritimeOtherFees struct {
	PreShipmentInspection Amount `json:"pre_shipment_inspection"`
	Carbon                Amount `json:"carbon"`
	SecurityFacility      Amount `json:"security_facility"`
	LowSulfur             Amount `json:"low_sulfur"`
	CancellationFee       Amount `json:"cancellation_fee"`
	SecurityManifest      Amount `json:"security_manifest"`
	Other                 Amount `json:"other"`
}

// MaritimeDetails is the fee breakdown an agent fills in for a maritime offer.
type MaritimeDetails struct {
	FreightValue  Amount                  `json:"freight_value"`
	ContainerType string                  `json:"container_type"`
	Origin        MaritimeOriginFees      `json:"origin_fees"`
	Destination   MaritimeDestinationFees `json:"destination_fees"`
	Other         MaritimeOtherFees       `json:"other_fees"`
}

// Breakdown holds the per-group subtotals and the grand total of an offer.
// For air offers the per-leg charges land in Additional and Destination is 0.
type Breakdown struct {
	Freight     float64 `json:"freight"`
	Additional  float64 `json:"additional"`
	Destination float64 `json:"destination"`
	Other       float64 `json:"other"`
	Total       float64 `json:"total"`
}

// CalculateAir computes the breakdown of an air fee schedule.
func CalculateAir(details AirDetails) Breakdown {
	b := Breakdown{
		Freight: details.FreightValue.Float64(),
		Additional: details.Additional.Screening.Float64() +
			details.Additional.Fuel.Float64() +
			details.Additional.AirwayBill.Float64() +
			details.Additional.OriginCosts.Float64() +
			details.Additional.DestinationCosts.Float64() +
			details.Additional.CancellationFee.Float64(),
		Other: details.Other.OtherFee.Float64(),
	}
	b.Total = b.Freight + b.Additional + b.Destination + b.Other

	return b
}

// CalculateMaritime computes the breakdown of a maritime fee schedule.
func CalculateMaritime(details MaritimeDetails) Breakdown {
	b := Breakdown{
		Freight: details.FreightValue.Float64(),
		Additional: details.Origin.SecurityManifest.Float64() +
			details.Origin.Handling.Float64(),
		Destination: details.Destination.Handling.Float64() +
			details.Destination.BLEmission.Float64() +
			details.Destination.Agency.Float64(),
		Other: details.Other.PreShipmentInspection.Float64() +
			details.Other.Carbon.Float64() +
			details.Other.SecurityFacility.Float64() +
			details.Other.LowSulfur.Float64() +
			details.Other.CancellationFee.Float64() +
			details.Other.SecurityManifest.Float64() +
			details.Other.Other.Float64(),
	}
	b.Total = b.Freight + b.Additional + b.Destination + b.Other

	return b
}

// CalculateDetails decodes a raw details document for the given shipping type
// and computes its breakdown. This is the entry point the offer submission
// path uses to revalidate the submitted price.
func CalculateDetails(shippingType entity.ShippingType, details json.RawMessage) (Breakdown, error) {
	switch shippingType {
	case entity.ShippingAir:
		var air AirDetails
		if err := json.Unmarshal(details, &air); err != nil {
			return Breakdown{}, errors.Wrap(err, "decode air fee details")
		}

		return CalculateAir(air), nil
	case entity.ShippingMaritime:
		var maritime MaritimeDetails
		if err := json.Unmarshal(details, &maritime); err != nil {
			return Breakdown{}, errors.Wrap(err, "decode maritime fee details")
		}

		return CalculateMaritime(maritime), nil
	default:
		return Breakdown{}, errors.Errorf("unsupported shipping type: %s", shippingType)
	}
}
