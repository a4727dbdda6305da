package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrPriceRange signals priceRange.min > priceRange.max.
	ErrPriceRange = errors.New("catalog: minimum price cannot be greater than maximum price")
	// ErrBadPricingModel signals an unknown pricing model value.
	ErrBadPricingModel = errors.New("catalog: pricing model must be hourly, fixed or package")
)

// ServiceRequest is the allow-listed client input for create. Owner identity
// always comes from the authenticated principal, never from the body.
type ServiceRequest struct {
	Title          string         `json:"title"`
	Category       string         `json:"category"`
	Tags           []string       `json:"tags"`
	Description    string         `json:"description"`
	PricingModel   string         `json:"pricingModel"`
	PriceRange     *PriceRange    `json:"priceRange"`
	IsNegotiable   bool           `json:"isNegotiable"`
	Availability   Availability   `json:"availability"`
	Location       Location       `json:"location"`
	Experience     Experience     `json:"experience"`
	Portfolio      Portfolio      `json:"portfolio"`
	Booking        BookingPolicy  `json:"booking"`
	AdditionalInfo AdditionalInfo `json:"additionalInfo"`
}

// ServicePatch carries optional updates; nil fields are left untouched.
type ServicePatch struct {
	Title          *string         `json:"title"`
	Category       *string         `json:"category"`
	Tags           *[]string       `json:"tags"`
	Description    *string         `json:"description"`
	PricingModel   *string         `json:"pricingModel"`
	PriceRange     *PriceRange     `json:"priceRange"`
	IsNegotiable   *bool           `json:"isNegotiable"`
	Availability   *Availability   `json:"availability"`
	Location       *Location       `json:"location"`
	Experience     *Experience     `json:"experience"`
	Portfolio      *Portfolio      `json:"portfolio"`
	Booking        *BookingPolicy  `json:"booking"`
	AdditionalInfo *AdditionalInfo `json:"additionalInfo"`
	IsActive       *bool           `json:"isActive"`
}

// ValidateNew checks the creation invariants: required fields present, a
// known pricing model and a consistent price range.
func ValidateNew(req *ServiceRequest) error {
	required := []struct {
		name  string
		empty bool
	}{
		{"title", req.Title == ""},
		{"category", req.Category == ""},
		{"description", req.Description == ""},
		{"pricingModel", req.PricingModel == ""},
		{"priceRange", req.PriceRange == nil},
	}
	for _, f := range required {
		if f.empty {
			return fmt.Errorf("catalog: %s is required", f.name)
		}
	}
	if !validPricingModel(req.PricingModel) {
		return ErrBadPricingModel
	}
	return validatePriceRange(req.PriceRange)
}

// ValidatePatch re-checks every constrained field the patch touches.
func ValidatePatch(patch *ServicePatch) error {
	if patch.Title != nil && *patch.Title == "" {
		return fmt.Errorf("catalog: title cannot be empty")
	}
	if patch.Category != nil && *patch.Category == "" {
		return fmt.Errorf("catalog: category cannot be empty")
	}
	if patch.Description != nil && *patch.Description == "" {
		return fmt.Errorf("catalog: description cannot be empty")
	}
	if patch.PricingModel != nil && !validPricingModel(*patch.PricingModel) {
		return ErrBadPricingModel
	}
	if patch.PriceRange != nil {
		return validatePriceRange(patch.PriceRange)
	}
	return nil
}

func validatePriceRange(pr *PriceRange) error {
	if pr.Min < 0 || pr.Max < 0 {
		return fmt.Errorf("catalog: prices cannot be negative")
	}
	if pr.Min > pr.Max {
		return ErrPriceRange
	}
	return nil
}

func validPricingModel(model string) bool {
	switch model {
	case PricingHourly, PricingFixed, PricingPackage:
		return true
	default:
		return false
	}
}
