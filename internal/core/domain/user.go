package domain

import "time"

// Company is a freee company linked to a user, with the stored credential
// reference used to mint access tokens.
type Company struct {
	CompanyID      string // internal identifier
	FreeeCompanyID int64  // freee's company identifier
	RefreshToken   string
}

// User is a LINE user known to the bot. ActiveCompany is nil until the
// account link flow completes.
type User struct {
	UserID        string
	LineUserID    string
	ActiveCompany *Company
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}
