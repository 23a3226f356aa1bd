package quickbooks

// tokenResponse is the OAuth2 bearer token payload from the Intuit token endpoint.
type tokenResponse struct {
	AccessToken           string `json:"access_token"`
	RefreshToken          string `json:"refresh_token"`
	TokenType             string `json:"token_type"`
	ExpiresIn             int64  `json:"expires_in"`
	RefreshTokenExpiresIn int64  `json:"x_refresh_token_expires_in"`
}

type tokenErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

type companyInfoResponse struct {
	CompanyInfo struct {
		CompanyName string `json:"CompanyName"`
		LegalName   string `json:"LegalName"`
		Country     string `json:"Country"`
	} `json:"CompanyInfo"`
}

type queryResponse struct {
	QueryResponse struct {
		Item          []qbItem `json:"Item"`
		StartPosition int      `json:"startPosition"`
		MaxResults    int      `json:"maxResults"`
	} `json:"QueryResponse"`
}

type qbItem struct {
	ID          string  `json:"Id"`
	Name        string  `json:"Name"`
	Sku         string  `json:"Sku"`
	Description string  `json:"Description"`
	Type        string  `json:"Type"`
	Active      bool    `json:"Active"`
	UnitPrice   float64 `json:"UnitPrice"`
	QtyOnHand   float64 `json:"QtyOnHand"`
}

type faultResponse struct {
	Fault struct {
		Error []struct {
			Message string `json:"Message"`
			Detail  string `json:"Detail"`
			Code    string `json:"code"`
		} `json:"Error"`
		Type string `json:"type"`
	} `json:"Fault"`
}
