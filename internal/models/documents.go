package models

import "time"

// AdminCredentials is the single admin account. The password is stored and
// compared in plaintext; the store is assumed private to the deployment.
type AdminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Profile struct {
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
	Bio     string `json:"bio"`
	Email   string `json:"email"`
	GitHub  string `json:"github"`
	Twitter string `json:"twitter"`
	Website string `json:"website"`
}

type Announcement struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Portal struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// RedeemCode is a single-use token. Used transitions false -> true exactly
// once; UsedBy and UsedAt are set at that point and never change again.
type RedeemCode struct {
	Code        string     `json:"code"`
	Type        string     `json:"type"`
	Value       string     `json:"value"`
	Description string     `json:"description,omitempty"`
	Used        bool       `json:"used"`
	UsedBy      *string    `json:"usedBy,omitempty"`
	UsedAt      *time.Time `json:"usedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type VipUser struct {
	Email      string    `json:"email"`
	Level      string    `json:"level"`
	ExpiryDate time.Time `json:"expiryDate"`
	CreatedAt  time.Time `json:"createdAt"`
}

type VerifiedUser struct {
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	VerifiedAt time.Time `json:"verifiedAt"`
}
