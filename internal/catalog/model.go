package catalog

import "time"

// PriceRange bounds what a customer may be charged for a service.
// Invariant: Min <= Max.
type PriceRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

type Availability struct {
	Days    []string `json:"days"`
	Times   []string `json:"times"`
	Urgency string   `json:"urgency"`
}

type Location struct {
	Type          string  `json:"type"`
	ServiceRadius float64 `json:"serviceRadius,omitempty"`
	ServiceArea   string  `json:"serviceArea,omitempty"`
}

type Experience struct {
	Skills            []string `json:"skills"`
	Certifications    []string `json:"certifications"`
	YearsOfExperience int      `json:"yearsOfExperience"`
}

type Portfolio struct {
	Images []string `json:"images"`
	Links  []string `json:"links"`
}

// BookingPolicy describes how customers engage the listing.
type BookingPolicy struct {
	Type               string   `json:"type"`
	Requirements       []string `json:"requirements"`
	CancellationPolicy string   `json:"cancellationPolicy"`
}

type AdditionalInfo struct {
	EstimatedDuration string   `json:"estimatedDuration"`
	EquipmentProvided []string `json:"equipmentProvided"`
	ServiceType       string   `json:"serviceType"`
}

// Service is a listing owned by exactly one taskio.
type Service struct {
	ID             string         `json:"id"`
	TaskioID       string         `json:"taskioId"`
	Title          string         `json:"title"`
	Category       string         `json:"category"`
	Tags           []string       `json:"tags"`
	Description    string         `json:"description"`
	PricingModel   string         `json:"pricingModel"`
	PriceRange     PriceRange     `json:"priceRange"`
	IsNegotiable   bool           `json:"isNegotiable"`
	ServiceImage   string         `json:"serviceImage,omitempty"`
	Availability   Availability   `json:"availability"`
	Location       Location       `json:"location"`
	Experience     Experience     `json:"experience"`
	Portfolio      Portfolio      `json:"portfolio"`
	Booking        BookingPolicy  `json:"booking"`
	AdditionalInfo AdditionalInfo `json:"additionalInfo"`
	IsActive       bool           `json:"isActive"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// PublicService is the discovery shape joined with the owning taskio.
type PublicService struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Category       string         `json:"category"`
	Tags           []string       `json:"tags"`
	Description    string         `json:"description"`
	ServiceImage   string         `json:"serviceImage,omitempty"`
	PricingModel   string         `json:"pricingModel"`
	PriceRange     PriceRange     `json:"priceRange"`
	IsNegotiable   bool           `json:"isNegotiable"`
	Location       Location       `json:"location"`
	Experience     Experience     `json:"experience"`
	AdditionalInfo AdditionalInfo `json:"additionalInfo"`
	Taskio         TaskioSummary  `json:"taskio"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// TaskioSummary is the owner slice exposed on public listings.
type TaskioSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

const (
	PricingHourly  = "hourly"
	PricingFixed   = "fixed"
	PricingPackage = "package"
)
