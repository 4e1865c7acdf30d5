package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotSignedIn        = errors.New("not signed in")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrNoRestaurant       = errors.New("cart has no owning restaurant")
	ErrRestaurantConflict = errors.New("cart holds items from another restaurant")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidCode        = errors.New("invalid or expired code")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrNotDelivered       = errors.New("order is not delivered yet")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
)
