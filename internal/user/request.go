package user

type RegisterRequest struct {
	FirstName       string `validate:"required"                json:"firstName"`
	LastName        string `validate:"required"                json:"lastName"`
	MobileNo        string `validate:"required"                json:"mobileNo"`
	Email           string `validate:"required,email"          json:"email"`
	Address         string `validate:"required"                json:"address"`
	Password        string `validate:"required,min=8"          json:"password"`
	ConfirmPassword string `validate:"required,eqfield=Password" json:"confirmPassword"`
}

type LoginRequest struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required"       json:"password"`
}

type UpdateCartRequest struct {
	Cart []CartLineRequest `validate:"required,dive" json:"cart"`
}
