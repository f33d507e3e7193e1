// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Identity is a local user known to the identity directory.
type Identity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TableName returns the name of the database table
// associated with the Identity model.
func (i Identity) TableName() string {
	return "users"
}

// Contact holds the addresses a local identity can be reached at.
type Contact struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	PhoneE164 string    `json:"phone_e164,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Recipient is a course student prepared for notification delivery. Phone
// and Email are empty when unknown.
type Recipient struct {
	GoogleUserID  string `json:"google_user_id"`
	MatchedUserID *int64 `json:"matched_user_id,omitempty"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
}
