package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidateName validates a sponsor or alias name.
//
// Names end up inside SVG text nodes, so control characters are rejected.
// Empty names are rejected as well since they cannot serve as a merge key.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name %q contains control characters", name)
		}
	}
	return nil
}

// ValidateLink validates a sponsor profile link.
// An empty link is valid (the avatar is rendered without a hyperlink);
// anything else must be an absolute http or https URL.
func ValidateLink(link string) error {
	if link == "" {
		return nil
	}
	u, err := url.Parse(link)
	if err != nil {
		return Wrap(ErrCodeInvalidLink, err, "invalid link %q", link)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidLink, "link %q must use http or https scheme", link)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidLink, "link %q has no host", link)
	}
	return nil
}

// ValidateAvatarRef validates an avatar reference, which is either an
// http(s) URL or a local file path.
func ValidateAvatarRef(ref string) error {
	if ref == "" {
		return New(ErrCodeMissingAvatar, "avatar reference cannot be empty")
	}
	if IsRemoteRef(ref) {
		return ValidateLink(ref)
	}
	for _, r := range ref {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "avatar path %q contains invalid characters", ref)
		}
	}
	return nil
}

// IsRemoteRef reports whether ref should be fetched over HTTP.
func IsRemoteRef(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
