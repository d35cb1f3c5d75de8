package db_models

const (
	RoleGuest = "guest"
	RoleUser  = "user"
)

type Account struct {
	BaseModel
	Name  string
	Email string `gorm:"unique"`
	// Empty for accounts created by the mock authenticator.
	PasswordHash string
	Role         string `gorm:"default:user"`
	AvatarURL    string

	Itineraries []Itinerary
}
