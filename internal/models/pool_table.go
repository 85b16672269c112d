package models

// TableSize is the playing-surface length of a table.
type TableSize string

const (
	Size7    TableSize = "7′"
	Size8    TableSize = "8′"
	Size8Pro TableSize = "8′ Pro"
	Size9    TableSize = "9′"
	Size10   TableSize = "10′"
)

// TableSizes lists the sizes in display order.
var TableSizes = []TableSize{Size7, Size8, Size8Pro, Size9, Size10}

// Valid reports whether s is a known size.
func (s TableSize) Valid() bool {
	for _, v := range TableSizes {
		if s == v {
			return true
		}
	}
	return false
}

// TableCondition grades a used table.
type TableCondition string

const (
	ConditionExcellent TableCondition = "Excellent"
	ConditionGood      TableCondition = "Good"
	ConditionFair      TableCondition = "Fair"
)

var TableConditions = []TableCondition{ConditionExcellent, ConditionGood, ConditionFair}

func (c TableCondition) Valid() bool {
	for _, v := range TableConditions {
		if c == v {
			return true
		}
	}
	return false
}

// TableStatus is the sale state of a listed table.
type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableSold      TableStatus = "sold"
	TablePending   TableStatus = "pending"
)

var TableStatuses = []TableStatus{TableAvailable, TableSold, TablePending}

func (s TableStatus) Valid() bool {
	for _, v := range TableStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CustomerInfo identifies the buyer of a sold table for the sold gallery.
type CustomerInfo struct {
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
}

// PoolTable is an inventory listing.
type PoolTable struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Brand          string         `json:"brand"`
	Size           TableSize      `json:"size"`
	Condition      TableCondition `json:"condition"`
	Price          float64        `json:"price"`
	OriginalPrice  float64        `json:"originalPrice,omitempty"`
	Images         []string       `json:"images"`
	Description    string         `json:"description"`
	Features       []string       `json:"features"`
	AdditionalInfo string         `json:"additionalInfo,omitempty"`
	Status         TableStatus    `json:"status"`
	DateAdded      string         `json:"dateAdded"`
	DateSold       string         `json:"dateSold,omitempty"`
	SoldPrice      *float64       `json:"soldPrice,omitempty"`
	CustomerInfo   *CustomerInfo  `json:"customerInfo,omitempty"`
	SortOrder      *int           `json:"sortOrder,omitempty"`
	CreatedAt      string         `json:"createdAt,omitempty"`
	UpdatedAt      string         `json:"updatedAt,omitempty"`
}

// FinalPrice is the sold price when recorded, otherwise the asking price.
func (t PoolTable) FinalPrice() float64 {
	if t.SoldPrice != nil {
		return *t.SoldPrice
	}
	return t.Price
}

// Discounted reports whether the asking price dropped below the original.
func (t PoolTable) Discounted() bool {
	return t.OriginalPrice > t.Price
}
