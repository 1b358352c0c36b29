package apierror

import "net/url"

// Client-side upload limits, mirrored from the backend so obviously bad
// uploads are rejected before the request is made.
const (
	MaxUploadSize = 5 * 1024 * 1024 // 5MB
)

var allowedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// ValidateUpload checks an upload's size and content type before it is sent.
// Failures come back as a *APIError with the same messages the backend would
// produce for the equivalent 413/415 rejection.
func ValidateUpload(size int64, contentType string) error {
	if size > MaxUploadSize {
		return &APIError{
			Message: "File size must not exceed 5MB",
			Status:  413,
		}
	}
	if !allowedUploadTypes[contentType] {
		return &APIError{
			Message: "Invalid file type. Please upload a JPEG, PNG, or WebP image",
			Status:  415,
		}
	}
	return nil
}

// ValidateURL reports whether the value is empty or a well-formed http(s)
// URL. Empty values are valid so optional fields can stay blank.
func ValidateURL(raw string) bool {
	if raw == "" {
		return true
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// SocialLinks are the optional social profile URLs a storefront can carry.
type SocialLinks struct {
	Facebook  string
	Instagram string
	LinkedIn  string
	Twitter   string
}

// ValidateSocialLinks validates each populated link and returns per-field
// messages for the invalid ones. An empty result means everything passed.
func ValidateSocialLinks(links SocialLinks) FieldErrors {
	errs := FieldErrors{}
	check := func(field, value string) {
		if value != "" && !ValidateURL(value) {
			errs[field] = []string{"Enter a valid URL"}
		}
	}
	check("facebook", links.Facebook)
	check("instagram", links.Instagram)
	check("linkedin", links.LinkedIn)
	check("twitter", links.Twitter)
	if len(errs) == 0 {
		return nil
	}
	return errs
}
