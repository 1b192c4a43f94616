package freight

// Volumetric divisors by transport modality. The carrier bills air
// cargo on a steeper cubic-to-weight conversion than road.
const (
	airDivisor  = 6000
	roadDivisor = 3333
)

// Divisor returns the volumetric divisor for a modality, or 1 when the
// modality has no volumetric rule.
func Divisor(modal ModalType) float64 {
	switch modal {
	case ModalAir:
		return airDivisor
	case ModalRoad:
		return roadDivisor
	default:
		return 1
	}
}

// CubicWeight converts package dimensions into the carrier's equivalent
// weight for the given modality. It returns 0 when no volumetric rule
// applies (a divisor of exactly 1 means no rule, never a division).
func CubicWeight(height, width, length float64, modal ModalType) float64 {
	divisor := Divisor(modal)
	if divisor == 1 {
		return 0
	}
	return (height * width * length) / divisor
}

// BillableWeight computes the weight submitted to the carrier for
// pricing. When the modality carries a volumetric rule the cubic weight
// fully replaces the physical weight; otherwise the raw weight plus the
// extra-weight additive is billed. Volumetric never combines with the
// additive weight: replacement is the carrier's billing convention.
func BillableWeight(profile SizeProfile, modal ModalType) float64 {
	if Divisor(modal) != 1 {
		return CubicWeight(profile.Height, profile.Width, profile.Length, modal)
	}
	return profile.Weight + profile.ExtraWeight
}
