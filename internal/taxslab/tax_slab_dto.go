package taxslab

type CreateTaxSlabRequest struct {
	RangeFrom float64 `json:"range_from" binding:"min=0"`
	RangeTo   float64 `json:"range_to" binding:"required,gtfield=RangeFrom"`
	TaxAmount float64 `json:"tax_amount" binding:"min=0"`
}

type UpdateTaxSlabRequest struct {
	RangeFrom float64 `json:"range_from" binding:"min=0"`
	RangeTo   float64 `json:"range_to" binding:"required,gtfield=RangeFrom"`
	TaxAmount float64 `json:"tax_amount" binding:"min=0"`
}

type TaxSlabResponse struct {
	ID        string  `json:"id"`
	RangeFrom float64 `json:"range_from"`
	RangeTo   float64 `json:"range_to"`
	TaxAmount float64 `json:"tax_amount"`
}

type SlabLookupResponse struct {
	Salary    float64 `json:"salary"`
	TaxAmount float64 `json:"tax_amount"`
	Matched   bool    `json:"matched"`
}
