package constants

// Roles asserted by the identity provider.
const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
	RoleStaff = "staff"
	RoleGuest = "guest"
)

// Actor recorded on events written without an authenticated caller.
const (
	ActorGuest  = "guest"
	ActorSystem = "system"
	ActorDoor   = "door-terminal"
)

// MaxCodeGenerationAttempts bounds the random draws made by one generate call.
const MaxCodeGenerationAttempts = 10

// MaxSearchResults caps booking search listings.
const MaxSearchResults = 100
