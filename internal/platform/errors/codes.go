// Package errors provides structured error handling for site builds.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Icon errors
	CodeMalformedMarkup  Code = "MALFORMED_MARKUP"
	CodeInvalidParameter Code = "INVALID_PARAMETER"
	CodeIconAssetInvalid Code = "ICON_ASSET_INVALID"
	CodeIconUnknown      Code = "ICON_UNKNOWN"

	// Content errors
	CodeContentInvalid Code = "CONTENT_INVALID"
	CodeDuplicateSlug  Code = "DUPLICATE_SLUG"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"

	// Deploy errors
	CodeDeployConfigInvalid Code = "DEPLOY_CONFIG_INVALID"
	CodeDeployFailed        Code = "DEPLOY_FAILED"
)

// HTTPStatus maps domain codes to HTTP status codes for the preview server.
func (c Code) HTTPStatus() int {
	switch c {
	// BadRequest - validation failures, bad input
	case CodeMalformedMarkup,
		CodeInvalidParameter,
		CodeIconAssetInvalid,
		CodeIconUnknown,
		CodeContentInvalid,
		CodeDuplicateSlug,
		CodeDeployConfigInvalid:
		return http.StatusBadRequest

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}
