package models

type RFQStatus string

const (
	RFQNew       RFQStatus = "new"
	RFQContacted RFQStatus = "contacted"
	RFQQuoted    RFQStatus = "quoted"
	RFQClosed    RFQStatus = "closed"
)

var RFQStatuses = []RFQStatus{RFQNew, RFQContacted, RFQQuoted, RFQClosed}

func (s RFQStatus) Valid() bool {
	for _, v := range RFQStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type ContactMethod string

const (
	ContactPhone ContactMethod = "phone"
	ContactEmail ContactMethod = "email"
	ContactText  ContactMethod = "text"
)

var ContactMethods = []ContactMethod{ContactPhone, ContactEmail, ContactText}

func (m ContactMethod) Valid() bool {
	for _, v := range ContactMethods {
		if m == v {
			return true
		}
	}
	return false
}

// RFQType tells which shape a quote request was submitted with.
type RFQType string

const (
	RFQTypeTable   RFQType = "table"
	RFQTypeService RFQType = "service"
)

// ServiceType is an option of the service quote form.
type ServiceType struct {
	Value string
	Label string
}

var ServiceTypes = []ServiceType{
	{"buy-sell", "Buy or Sell a Table"},
	{"moving", "Table Moving"},
	{"installation", "Installation & Setup"},
	{"delivery", "Delivery"},
	{"consultation", "Consultation"},
	{"repair", "Repair & Refelting"},
	{"general", "General Inquiry"},
}

// RFQ is a request for quote, either about a listed table or a service.
type RFQ struct {
	ID                 string        `json:"id"`
	RFQType            RFQType       `json:"rfqType"`
	CustomerName       string        `json:"customerName"`
	Email              string        `json:"email"`
	Phone              string        `json:"phone"`
	Address            string        `json:"address"`
	City               string        `json:"city"`
	ZipCode            string        `json:"zipCode"`
	Message            string        `json:"message"`
	PreferredContact   ContactMethod `json:"preferredContact"`
	Status             RFQStatus     `json:"status"`
	SubmittedAt        string        `json:"submittedAt"`
	Source             string        `json:"source"`
	TableID            string        `json:"tableId,omitempty"`
	TableName          string        `json:"tableName,omitempty"`
	TablePrice         *float64      `json:"tablePrice,omitempty"`
	InstallationNeeded *bool         `json:"installationNeeded,omitempty"`
	ServiceType        string        `json:"serviceType,omitempty"`
	Notes              string        `json:"notes,omitempty"`
	CreatedAt          string        `json:"createdAt,omitempty"`
	UpdatedAt          string        `json:"updatedAt,omitempty"`
}
