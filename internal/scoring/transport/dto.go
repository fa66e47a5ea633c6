// Package transport defines the request/response DTOs for the scoring API.
package transport

import "leadscore_backend/internal/scoring/domain"

// OfferRequest is the body of POST /offer.
type OfferRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=200"`
	ValueProps    []string `json:"value_props" validate:"required,min=1,dive,required"`
	IdealUseCases []string `json:"ideal_use_cases" validate:"required,min=1,dive,required"`
}

// ToDomain converts the request into a domain offer.
func (r OfferRequest) ToDomain() domain.Offer {
	return domain.Offer{
		Name:          r.Name,
		ValueProps:    r.ValueProps,
		IdealUseCases: r.IdealUseCases,
	}
}

// OfferResponse echoes the stored offer.
type OfferResponse struct {
	Message string       `json:"message"`
	Offer   domain.Offer `json:"offer"`
}

// LeadsUploadResponse reports how many lead rows were accepted.
type LeadsUploadResponse struct {
	Message string `json:"message"`
	Rows    int    `json:"rows"`
}
