package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SelectShipRequest is the request body for selecting a ship to place
type SelectShipRequest struct {
	ShipType string `json:"ship_type"`
}

// PlaceShipRequest is the request body for placing a ship
type PlaceShipRequest struct {
	ShipType string `json:"ship_type"`
	X        *int   `json:"x"`
	Y        *int   `json:"y"`
	Vertical bool   `json:"vertical"`
}

// FireRequest is the request body for firing at the opponent. Either x and y
// or an A1-style cell label must be given.
type FireRequest struct {
	X    *int   `json:"x"`
	Y    *int   `json:"y"`
	Cell string `json:"cell,omitempty"`
}
