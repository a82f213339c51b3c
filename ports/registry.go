package ports

import "github.com/layer-3/weather/core"

// TokenRegistry issues opaque access tokens and answers whether a token is valid
type TokenRegistry interface {
	Acquire() core.Token
	IsAuthorized(token core.Token) bool
	Revoke(token core.Token) bool
}
