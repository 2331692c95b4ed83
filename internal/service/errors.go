package service

import "errors"

var (
	ErrGameNotFound        = errors.New("game not found")
	ErrPromotionPending    = errors.New("promotion pending")
	ErrIllegalOpponentMove = errors.New("opponent returned an illegal move")
	ErrCoordinatorStopped  = errors.New("coordinator stopped")
	ErrConsumerAttached    = errors.New("game already has an event consumer")
)
