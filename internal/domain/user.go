package domain

const (
	UserTypeSeller = "SELLER"
	UserTypeBuyer  = "BUYER"
	UserTypeAdmin  = "ADMIN"
)

type User struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`
	Type  string `db:"user_type"`
}

func (u *User) IsSeller() bool { return u.Type == UserTypeSeller }
func (u *User) IsAdmin() bool  { return u.Type == UserTypeAdmin }
