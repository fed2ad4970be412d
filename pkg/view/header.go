package view

// Header is the persistent user-info / nav strip shown above every screen.
type Header struct {
	LoggedIn  bool
	Email     string
	IsAdmin   bool
	CartCount int
}
