package hooks

import (
	"inkwell-server/db"
	"inkwell-server/shared"
)

// Hosted deployments register hooks to layer extra behavior onto account
// lifecycle events (quota checks, welcome emails, analytics). A missing hook
// is a no-op so the open-source build runs without any registered.

const (
	CreateAccount = "create_account"
	DeleteAccount = "delete_account"
)

type HookParams struct {
	User *db.User
}

type Hook func(params HookParams) *shared.ApiError

var hooks = make(map[string]Hook)

func RegisterHook(name string, hook Hook) {
	hooks[name] = hook
}

func ExecHook(name string, params HookParams) *shared.ApiError {
	hook, ok := hooks[name]
	if !ok {
		return nil
	}
	return hook(params)
}
