package dto

import "github.com/EmadRadwan/Contracts-sub015/internal/core/domain"

// GlAccountResponse is the wire shape of a GL account directory entry.
type GlAccountResponse struct {
	GlAccountID     string                 `json:"glAccountID"`
	GlAccountTypeID domain.GlAccountTypeID `json:"glAccountTypeID"`
	AccountName     string                 `json:"accountName"`
}

// UomResponse is the wire shape of a unit-of-measure reference row.
type UomResponse struct {
	UomID       string `json:"uomID"`
	UomTypeID   string `json:"uomTypeID"`
	Description string `json:"description"`
}

// ToGlAccountResponse converts a domain GL account to wire shape.
func ToGlAccountResponse(a *domain.GlAccount) GlAccountResponse {
	return GlAccountResponse{
		GlAccountID:     a.GlAccountID,
		GlAccountTypeID: a.GlAccountTypeID,
		AccountName:     a.AccountName,
	}
}

// ToUomResponse converts a domain UOM to wire shape.
func ToUomResponse(u *domain.Uom) UomResponse {
	return UomResponse{
		UomID:       u.UomID,
		UomTypeID:   u.UomTypeID,
		Description: u.Description,
	}
}

// ToUomResponses converts a slice of domain UOMs.
func ToUomResponses(uoms []domain.Uom) []UomResponse {
	responses := make([]UomResponse, len(uoms))
	for i := range uoms {
		responses[i] = ToUomResponse(&uoms[i])
	}
	return responses
}
