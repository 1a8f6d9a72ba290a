package domain

// Provider represents a service provider available for booking
type Provider struct {
	ID        string
	Name      string
	AvatarURL string
}
