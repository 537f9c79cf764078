package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product domain errors.
var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}
)

// Product is a storefront product. Spec entries and FAQs are explicit typed
// lists rather than open dictionaries; anything the known shapes don't cover
// lives in Extensions.
type Product struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description string
	Price       float64
	Stock       int32
	Active      bool

	Specs []ProductSpec
	FAQs  []ProductFAQ

	// Extensions carries forward-compatible extra fields that have no typed
	// home yet. Readers must tolerate unknown keys.
	Extensions map[string]string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductSpec is a single labeled specification line, e.g. {"Weight", "250g"}.
type ProductSpec struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ProductFAQ is a question/answer pair shown on the product page.
type ProductFAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
