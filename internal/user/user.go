package user

import "time"

// User is the single persisted identity record. Email, mobile and
// google_id are each optional but unique when present; password_hash
// is absent for accounts created through Google login, and its absence
// is the signal that password login must be rejected for the record.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	Mobile       string    `bson:"mobile,omitempty" json:"mobile,omitempty"`
	PasswordHash string    `bson:"password_hash,omitempty" json:"-"`
	Username     string    `bson:"username,omitempty" json:"username,omitempty"`
	GoogleID     string    `bson:"google_id,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// HasPassword reports whether the record can authenticate with a
// password at all.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
