package models

// Game is something a child can play during a session
type Game struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GameInput is the payload accepted when creating a game
type GameInput struct {
	Name string `json:"name"`
}
