// internal/directory/models.go
package directory

// Business is one waste-exchange listing. Records are supplied in bulk
// at page load and never mutated by the view layer.
type Business struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category,omitempty"`
	Waste     string  `json:"waste"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Image     string  `json:"image,omitempty"`
	DetailURL string  `json:"detail_url,omitempty"`
}

// Category is a directory filter bucket.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RegistrationInput is the business-registration form payload. The
// coordinate fields arrive as strings because the map picker writes
// them into text inputs at 6 decimal places.
type RegistrationInput struct {
	Name      string `json:"name" form:"name" binding:"required"`
	Category  string `json:"category" form:"category"`
	Waste     string `json:"waste" form:"waste" binding:"required"`
	Phone     string `json:"phone" form:"phone" binding:"required"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Latitude  string `json:"latitude" form:"latitude" binding:"required"`
	Longitude string `json:"longitude" form:"longitude" binding:"required"`
}

// QuoteInput is the quotation-request payload for a listed business.
type QuoteInput struct {
	BusinessID int64  `json:"business_id" binding:"required"`
	SenderName string `json:"sender_name" binding:"required"`
	SenderMail string `json:"sender_email" binding:"required,email"`
	Message    string `json:"message" binding:"required"`
}
