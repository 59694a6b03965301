package ports

import "github.com/mugstore/backoffice/internal/core/domain"

// Actor identifies the authenticated user behind a request, as extracted from
// the JWT by the auth middleware. IP is the client address resolved by the
// transport layer and travels with the actor so audit entries can record it.
type Actor struct {
	ID       string
	Username string
	Role     domain.Role
	IP       string
}

// Upload carries a file received by the transport layer.
type Upload struct {
	Filename string
	Data     []byte
}
