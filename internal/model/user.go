package model

import "github.com/google/uuid"

// Role is the access level of a registered user.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleAdmin    Role = "Admin"
	RoleLibrary  Role = "Library"
)

// Address is a postal address stored on the user profile.
type Address struct {
	State    string `json:"State"`
	District string `json:"District"`
	Town     string `json:"Town"`
	PinCode  int    `json:"PinCode"`
}

// User is a registered customer. PasswordHash is never serialised.
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	FirstName    string     `json:"FName" db:"first_name"`
	LastName     string     `json:"LName" db:"last_name"`
	Mobile       string     `json:"Mobile" db:"mobile"`
	Email        string     `json:"Email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         Role       `json:"Role" db:"role"`
	Addresses    []Address  `json:"Address" db:"addresses"`
	Cart         []CartLine `json:"Cart"`
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	FirstName string `json:"FName"`
	LastName  string `json:"LName"`
	Mobile    string `json:"Mobile"`
	Email     string `json:"Email"`
	Password  string `json:"Password"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"Email"`
	Password string `json:"Password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	FirstName string `json:"FName"`
	LastName  string `json:"LName"`
	Email     string `json:"Email"`
	Mobile    string `json:"Mobile"`
	Token     string `json:"token"`
}

// UserUpdate is a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	FirstName *string    `json:"FName,omitempty"`
	LastName  *string    `json:"LName,omitempty"`
	Mobile    *string    `json:"Mobile,omitempty"`
	Password  *string    `json:"Password,omitempty"`
	Addresses *[]Address `json:"Address,omitempty"`
}
