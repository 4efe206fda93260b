// Package entity defines the core business entities for the domain layer.
package entity

// OperationType is the category of an operation.
type OperationType string

const (
	OperationTypeSale                OperationType = "sale"
	OperationTypeTraditionalRental   OperationType = "traditional_rental"
	OperationTypeTemporaryRental     OperationType = "temporary_rental"
	OperationTypeCommercialRental    OperationType = "commercial_rental"
	OperationTypeParking             OperationType = "parking"
	OperationTypeCommercialPremises  OperationType = "commercial_premises"
	OperationTypeBusinessTransfer    OperationType = "business_transfer"
	OperationTypeDevelopment         OperationType = "development"
	OperationTypeSubdivision         OperationType = "subdivision"
	OperationTypeIndustrialWarehouse OperationType = "industrial_warehouse"
	OperationTypeDevelopmentLots     OperationType = "development_lots"
)

// ReportGroup is one of the coarse categories used by the grouped summary.
type ReportGroup string

const (
	ReportGroupSaleParkingCommercial ReportGroup = "sale_parking_commercial"
	ReportGroupBusinessTransfer      ReportGroup = "business_transfer"
	ReportGroupTraditionalRental     ReportGroup = "traditional_rental"
	ReportGroupDevelopment           ReportGroup = "development"
	ReportGroupTemporaryRental       ReportGroup = "temporary_rental"
	ReportGroupCommercialRental      ReportGroup = "commercial_rental"
)

// ReportGroups lists the groups in report order.
var ReportGroups = []ReportGroup{
	ReportGroupSaleParkingCommercial,
	ReportGroupBusinessTransfer,
	ReportGroupTraditionalRental,
	ReportGroupDevelopment,
	ReportGroupTemporaryRental,
	ReportGroupCommercialRental,
}

// TypeTraits is the membership of an operation type in every report category.
type TypeTraits struct {
	// Group is empty for types the grouped summary leaves out.
	Group ReportGroup
	// Rental types are excluded from exclusivity and days-to-sell.
	Rental bool
	// ExcludedFromAverage types do not contribute to the group average value.
	ExcludedFromAverage bool
	// ExcludedFromSellTime types do not contribute to average days-to-sell.
	ExcludedFromSellTime bool
}

// typeTraits is the single category membership table consumed by every aggregator.
var typeTraits = map[OperationType]TypeTraits{
	OperationTypeSale: {
		Group: ReportGroupSaleParkingCommercial,
	},
	OperationTypeTraditionalRental: {
		Group:                ReportGroupTraditionalRental,
		Rental:               true,
		ExcludedFromAverage:  true,
		ExcludedFromSellTime: true,
	},
	OperationTypeTemporaryRental: {
		Group:                ReportGroupTemporaryRental,
		Rental:               true,
		ExcludedFromAverage:  true,
		ExcludedFromSellTime: true,
	},
	OperationTypeCommercialRental: {
		Group:                ReportGroupCommercialRental,
		Rental:               true,
		ExcludedFromAverage:  true,
		ExcludedFromSellTime: true,
	},
	OperationTypeParking: {
		Group:               ReportGroupSaleParkingCommercial,
		ExcludedFromAverage: true,
	},
	OperationTypeCommercialPremises: {
		Group:               ReportGroupSaleParkingCommercial,
		ExcludedFromAverage: true,
	},
	OperationTypeBusinessTransfer: {
		Group:               ReportGroupBusinessTransfer,
		ExcludedFromAverage: true,
	},
	OperationTypeDevelopment: {
		Group:                ReportGroupDevelopment,
		ExcludedFromSellTime: true,
	},
	OperationTypeSubdivision:         {},
	OperationTypeIndustrialWarehouse: {},
	OperationTypeDevelopmentLots: {
		ExcludedFromAverage: true,
	},
}

// OperationTypes lists every known operation type in declaration order.
var OperationTypes = []OperationType{
	OperationTypeSale,
	OperationTypeTraditionalRental,
	OperationTypeTemporaryRental,
	OperationTypeCommercialRental,
	OperationTypeParking,
	OperationTypeCommercialPremises,
	OperationTypeBusinessTransfer,
	OperationTypeDevelopment,
	OperationTypeSubdivision,
	OperationTypeIndustrialWarehouse,
	OperationTypeDevelopmentLots,
}

// Traits returns the category membership of the type. Unknown types have no traits.
func (t OperationType) Traits() TypeTraits {
	return typeTraits[t]
}

// Valid reports whether t is a known operation type.
func (t OperationType) Valid() bool {
	_, ok := typeTraits[t]
	return ok
}

// IsRental reports whether t is one of the rental types.
func (t OperationType) IsRental() bool {
	return t.Traits().Rental
}

// ReportGroup returns the coarse group of t and whether it has one.
func (t OperationType) ReportGroup() (ReportGroup, bool) {
	g := t.Traits().Group
	return g, g != ""
}

// AverageExclusions returns the types left out of the group average value.
func AverageExclusions() map[OperationType]bool {
	excluded := make(map[OperationType]bool)
	for t, traits := range typeTraits {
		if traits.ExcludedFromAverage {
			excluded[t] = true
		}
	}
	return excluded
}
