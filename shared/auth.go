package shared

type ApiErrorType string

const (
	ApiErrorTypeAuthRequired     ApiErrorType = "auth_required"
	ApiErrorTypeInvalidToken     ApiErrorType = "invalid_token"
	ApiErrorTypeSubjectNotFound  ApiErrorType = "subject_not_found"
	ApiErrorTypeAdminRequired    ApiErrorType = "admin_required"
	ApiErrorTypeNotOwner         ApiErrorType = "not_owner"
	ApiErrorTypeSelfModification ApiErrorType = "self_modification"

	ApiErrorTypeNotFound       ApiErrorType = "not_found"
	ApiErrorTypeValidation     ApiErrorType = "validation_error"
	ApiErrorTypeConflict       ApiErrorType = "conflict"
	ApiErrorTypeUpstreamAsset  ApiErrorType = "upstream_asset_error"
	ApiErrorTypeTransientStore ApiErrorType = "transient_store_error"

	ApiErrorTypeOther ApiErrorType = "other"
)

type ApiError struct {
	Type   ApiErrorType `json:"type"`
	Status int          `json:"status"`
	Msg    string       `json:"msg"`
}

func (e ApiError) Error() string {
	return e.Msg
}
