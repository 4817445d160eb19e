package rewards

import "errors"

// Operation-level rejections. Every rejected operation leaves prior
// state unchanged.
var (
	ErrQuizAlreadyCompleted = errors.New("quiz already completed today")
	ErrQuizInProgress       = errors.New("a quiz session is already running")
	ErrNoActiveQuestion     = errors.New("no active quiz question")
	ErrAnswerAlreadyChosen  = errors.New("answer already chosen for this question")
	ErrInvalidAnswer        = errors.New("answer index out of range")
	ErrSpinNotAvailable     = errors.New("no spins left today")
	ErrSpinInProgress       = errors.New("a spin is already in progress")
	ErrSaleExpired          = errors.New("flash sale has ended")
	ErrSaleSoldOut          = errors.New("flash sale is sold out")
	ErrUnknownSale          = errors.New("unknown flash sale")
)
