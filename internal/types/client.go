package types

// Client is a recruiter-side employer record. The unique key across the
// client collection is ID (a generated string).
type Client struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Industry             string    `json:"industry"`
	Region               string    `json:"region"`
	ActiveMandates       []Mandate `json:"activeMandates"`
	TotalBusinessBrought int       `json:"totalBusinessBrought"`
	PlacementsCount      int       `json:"placementsCount"`
}

// Normalize applies defaults for the accumulator fields. Accumulators never
// go below zero and only ever increase via placements.
func (c Client) Normalize() Client {
	if c.ActiveMandates == nil {
		c.ActiveMandates = []Mandate{}
	}
	if c.TotalBusinessBrought < 0 {
		c.TotalBusinessBrought = 0
	}
	if c.PlacementsCount < 0 {
		c.PlacementsCount = 0
	}
	return c
}

// Mandate is an open vacancy posting attached to a client, used by the
// matching engine to rank candidates.
type Mandate struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Salary      string `json:"salary,omitempty"`
}
