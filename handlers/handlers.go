package handlers

import (
	"github.com/go-playground/validator/v10"

	"inkwell-server/config"
	"inkwell-server/token"
)

var (
	sessionCodec *token.Codec
	goEnv        string
	validate     = validator.New(validator.WithRequiredStructEnabled())
)

// Init wires the handler package to its runtime collaborators. Must be
// called before any handler serves a request.
func Init(cfg *config.Config) {
	sessionCodec = token.NewCodec(cfg.TokenSecret)
	goEnv = cfg.GoEnv
}
