package models

import "strings"

type UserInfo struct {
	ID                   int    `json:"id"`
	Email                string `json:"email"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Phone                string `json:"phone"`
	Username             string `json:"username"`
	IsVerificationNeeded bool   `json:"is_verification_needed"`
}

// Name joins first and last name, skipping empty parts.
func (u UserInfo) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Company struct {
	ID         int    `json:"company_id"`
	Name       string `json:"company_name"`
	IsSelected bool   `json:"is_selected"`
}

type CompanyList struct {
	Companies []Company `json:"companies"`
}
