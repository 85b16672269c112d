package models

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

var ReviewStatuses = []ReviewStatus{ReviewPending, ReviewApproved, ReviewRejected}

func (s ReviewStatus) Valid() bool {
	for _, v := range ReviewStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ReviewServices are the options offered on the public review form.
var ReviewServices = []string{
	"Table Moving",
	"Table Installation",
	"Table Purchase",
	"Table Repair",
	"General Service",
}

// Review is a customer testimonial. Email is only visible to admins.
type Review struct {
	ID              string       `json:"id"`
	CustomerName    string       `json:"customerName"`
	Email           string       `json:"email,omitempty"`
	Rating          int          `json:"rating"`
	Comment         string       `json:"comment"`
	Service         string       `json:"service"`
	Images          []string     `json:"images"`
	Status          ReviewStatus `json:"status"`
	DateSubmitted   string       `json:"dateSubmitted"`
	AdminResponse   string       `json:"adminResponse,omitempty"`
	AdminResponseAt string       `json:"adminResponseAt,omitempty"`
	CreatedAt       string       `json:"createdAt,omitempty"`
	UpdatedAt       string       `json:"updatedAt,omitempty"`
}

// Public returns a copy safe to show anonymous visitors.
func (r Review) Public() Review {
	r.Email = ""
	return r
}
