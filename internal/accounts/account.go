package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/muscleforge/internal/db"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrUsernameTaken    = errors.New("username taken")
	ErrWrongCredentials = errors.New("wrong credentials")
)

type Account struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (a *Account) Owner() int {
	return a.ID
}

type RegisterForm struct {
	Username  string `json:"username" validate:"required,max=150,username"`
	Email     string `json:"email" validate:"omitempty,max=254,email"`
	Password1 string `json:"password1" validate:"required,min=8,max=128"`
	Password2 string `json:"password2" validate:"required,eqfield=Password1"`
}

// Echo drops the passwords before a rejected form is sent back.
func (f RegisterForm) Echo() RegisterForm {
	f.Password1, f.Password2 = "", ""
	return f
}

type SettingsForm struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email" validate:"omitempty,max=254,email"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PostSaveHook runs inside the transaction that wrote the account.
// created is true only for the insert that brought the account into existence,
// hooks doing one-time setup must ignore every other call.
type PostSaveHook func(ctx context.Context, q db.Querier, account *Account, created bool) error
