package analysis

import "github.com/udyamlens/udyamlens/internal/models"

// Financial product names, ordered generic-first within each tier.
const (
	ProductBankWorkingCapital = "Bank Working Capital Loan"
	ProductTermLoan           = "Term Loan at Lower Interest"
	ProductMachineryLoan      = "Machinery / Equipment Loan"
	ProductFleetLoan          = "Fleet Expansion Loan"
	ProductGrowthCredit       = "Growth Capital / Line of Credit"
	ProductNBFCWorkingCapital = "NBFC Working Capital Loan"
	ProductInvoiceDiscounting = "Invoice Discounting"
	ProductInventoryFinancing = "Inventory Financing"
	ProductKisanCreditCard    = "Kisan Credit Card (KCC)"
	ProductSecuredNBFCLoan    = "Secured NBFC Loan"
	ProductShortTermWCSupport = "Short-term Working Capital Support"
	ProductGovtCreditSchemes  = "Government-backed Credit Schemes"
)

// RecommendProducts maps (vertical, credit risk) to an ordered product
// list: generic products first, vertical-specific products appended.
// It never consults the metric set, only the two summarized inputs, and
// the rule table never emits duplicates.
func RecommendProducts(vertical models.Vertical, risk models.CreditRisk) []string {
	var products []string

	switch risk {
	case models.RiskLow:
		products = append(products, ProductBankWorkingCapital, ProductTermLoan)
		switch vertical {
		case models.VerticalManufacturing:
			products = append(products, ProductMachineryLoan)
		case models.VerticalLogistics:
			products = append(products, ProductFleetLoan)
		case models.VerticalEcommerce:
			products = append(products, ProductGrowthCredit)
		}

	case models.RiskMedium:
		products = append(products, ProductNBFCWorkingCapital, ProductInvoiceDiscounting)
		switch vertical {
		case models.VerticalRetail, models.VerticalEcommerce:
			products = append(products, ProductInventoryFinancing)
		case models.VerticalAgriculture:
			products = append(products, ProductKisanCreditCard)
		}

	default: // High risk: same support set for every vertical.
		products = append(products,
			ProductSecuredNBFCLoan,
			ProductShortTermWCSupport,
			ProductGovtCreditSchemes,
		)
	}

	return products
}
