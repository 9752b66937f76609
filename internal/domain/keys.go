package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserRole  CtxKey = "Role"
	KeyCompanyID CtxKey = "CompanyID"
)

// Roles issued by the authentication service.
const (
	RoleJobSeeker = "job_seeker"
	RoleCompany   = "company"
	RoleAdmin     = "admin"
)

// Identity is the caller as resolved by the authentication layer.
type Identity struct {
	UserID    int64  `json:"user_id"`
	CompanyID int64  `json:"company_id,omitempty"`
	Role      string `json:"role"`
}

// CandidateID returns the caller's candidate id when the caller is a job seeker.
func (i *Identity) CandidateID() (int64, bool) {
	if i == nil || i.Role != RoleJobSeeker || i.UserID <= 0 {
		return 0, false
	}
	return i.UserID, true
}

// OwnsCompany reports whether the caller acts for companyID.
func (i *Identity) OwnsCompany(companyID int64) bool {
	if i == nil || companyID <= 0 {
		return false
	}
	if i.Role == RoleAdmin {
		return true
	}
	return i.Role == RoleCompany && i.CompanyID == companyID
}
