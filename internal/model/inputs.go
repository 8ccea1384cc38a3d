package model

// Registration : данные для создания учетной записи
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Credentials : данные для входа, TOTPCode обязателен только при включенной 2FA
type Credentials struct {
	Email    string
	Password string
	TOTPCode string
}

// ProfileUpdate : изменяемые поля профиля, email не меняется
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Phone     string
}
