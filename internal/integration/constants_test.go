package integration_test

import (
	"time"

	"github.com/metinatakli/cinex-web/internal/domain"
)

const (
	// User related constants
	TestUserId       = 1
	TestUsername     = "freddie"
	TestUserEmail    = "freddie@example.com"
	TestUserPassword = "bohemian1975"

	// Room related constants
	TestRoomId      = 1
	TestRoomName    = "Sala 1"
	TestMovieTitle  = "Metropolis"
	TestMoviePoster = "https://example.com/metropolis.jpg"
	TestRoomRows    = 3
	TestRoomColumns = 4

	// Payment related constants
	TestCardNumber = "4242 4242 4242 4242"
	TestCardHolder = "Freddie Mercury"
	TestCardExpiry = "12/99"
	TestCardCVV    = "123"
)

var (
	Today    = domain.DateKey(domain.Day(time.Now()))
	Tomorrow = domain.DateKey(domain.Day(time.Now()).AddDate(0, 0, 1))
)
