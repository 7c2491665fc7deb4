package domain

// GlAccountTypeID classifies a GL account by its fundamental accounting type.
type GlAccountTypeID string

const (
	GlAccountTypeAsset     GlAccountTypeID = "ASSET"
	GlAccountTypeLiability GlAccountTypeID = "LIABILITY"
	GlAccountTypeEquity    GlAccountTypeID = "EQUITY"
	GlAccountTypeRevenue   GlAccountTypeID = "REVENUE"
	GlAccountTypeExpense   GlAccountTypeID = "EXPENSE"
)

// GlAccount is one entry of the GL account directory: reference data mapping
// an account identifier to its type classification and display name.
// The ledger core never mutates GL accounts; they are seeded by migration.
type GlAccount struct {
	GlAccountID     string          `json:"glAccountID"`
	GlAccountTypeID GlAccountTypeID `json:"glAccountTypeID"`
	AccountName     string          `json:"accountName"`
}

// Uom is a unit-of-measure reference row. The ledger core only consumes
// currency UOMs (uomTypeID = CURRENCY_MEASURE).
type Uom struct {
	UomID       string `json:"uomID"` // e.g. "USD"
	UomTypeID   string `json:"uomTypeID"`
	Description string `json:"description"`
}

const UomTypeCurrency = "CURRENCY_MEASURE"
