package model

import "errors"

var (
	ErrInvalidCoordinate  = errors.New("invalid coordinate")
	ErrInvalidPromotion   = errors.New("invalid promotion piece")
	ErrNoPendingPromotion = errors.New("no promotion pending")
	ErrInvalidFEN         = errors.New("invalid FEN")
	ErrInvalidPosition    = errors.New("invalid position")
)
