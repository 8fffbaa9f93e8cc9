package dto

// RegisterCitizenRequest is the citizen self-registration payload:
// credentials plus the requester profile and address.
type RegisterCitizenRequest struct {
	Name            string `json:"name"             binding:"required,max=100"`
	DocumentID      string `json:"document_id"      binding:"required,max=20"`
	PostalCode      string `json:"postal_code"      binding:"required,len=8"`
	Street          string `json:"street"           binding:"required,max=100"`
	Number          string `json:"number"           binding:"required,max=10"`
	Complement      string `json:"complement"       binding:"omitempty,max=50"`
	District        string `json:"district"         binding:"required,max=50"`
	City            string `json:"city"             binding:"required,max=50"`
	State           string `json:"state"            binding:"required,len=2"`
	Username        string `json:"username"         binding:"required,max=150"`
	Email           string `json:"email"            binding:"required,email"`
	Password        string `json:"password"         binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the token-refresh payload.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AccountResponse is the sanitized account view.
type AccountResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// TokenResponse is the token pair returned on login and refresh.
type TokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int             `json:"expires_in"` // access token lifetime in seconds
	Account      AccountResponse `json:"account"`
}

// ProfileResponse is the answer to GET /auth/me: the account plus whichever
// profile kind it is bound to.
type ProfileResponse struct {
	Account AccountResponse `json:"account"`
	Kind    string          `json:"kind"` // "citizen" | "staff" | "admin"
	Citizen *CitizenSummary `json:"citizen,omitempty"`
	Staff   *StaffResponse  `json:"staff,omitempty"`
}

// CitizenSummary is the requester profile view.
type CitizenSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DocumentID string `json:"document_id"`
	PostalCode string `json:"postal_code"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
}
