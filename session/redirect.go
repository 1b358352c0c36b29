package session

import (
	"context"
	"net/url"
	"strings"
)

// resolveRedirect decides where to navigate after a successful login, in
// strict priority order: a stashed redirect target (consumed on read), an
// explicit redirect query parameter on the current URL, then a default
// inferred from the site identifier.
func (m *Manager) resolveRedirect(ctx context.Context, user User) string {
	if target, err := m.stash.Get(ctx, redirectStashKey); err == nil && target != "" {
		if err := m.stash.Delete(ctx, redirectStashKey); err != nil {
			m.log.Err(err).Msg("Failed to consume stashed redirect")
		}
		return target
	}

	current := m.currentURL()

	if current != nil {
		if param := current.Query().Get("redirect"); param != "" {
			// Callers stash pre-encoded targets in the parameter, so the
			// value is decoded once more after query parsing.
			if decoded, err := url.QueryUnescape(param); err == nil {
				return decoded
			}
			return param
		}
	}

	site := m.siteIdentifier(current, user)
	exists, err := m.api.PageExists(ctx, site, homePage)
	if err != nil {
		m.log.Err(err).Str("site", site).Msg("Could not check page existence, using fallback")
		return homePath
	}
	if exists {
		return homePath
	}
	return basePath
}

// siteIdentifier derives the tenant label scoping redirect destinations:
// first from a /publish/{site}/... path segment, then from the hostname
// after stripping the local or production suffix, finally falling back to
// the user's id or email.
func (m *Manager) siteIdentifier(current *url.URL, user User) string {
	if current != nil {
		segments := strings.Split(strings.Trim(current.Path, "/"), "/")
		for i, segment := range segments {
			if segment == "publish" && i+1 < len(segments) && segments[i+1] != "" {
				return segments[i+1]
			}
		}

		if site := hostLabel(current.Hostname(), m.localSuffix, m.prodSuffix); site != "" {
			return site
		}
	}

	m.log.Warn().Msg("Could not determine subdomain, falling back to user ID")
	if user.ID != "" {
		return user.ID
	}
	return user.Email
}

// hostLabel extracts the leading subdomain label from a tenant hostname.
// The bare production host and its www alias are not tenant hosts.
func hostLabel(hostname, localSuffix, prodSuffix string) string {
	if strings.HasSuffix(hostname, localSuffix) {
		return strings.Split(hostname, ".")[0]
	}
	if strings.HasSuffix(hostname, prodSuffix) && hostname != "www"+prodSuffix {
		return strings.Split(hostname, ".")[0]
	}
	return ""
}

// currentURL resolves the Locator, tolerating a nil collaborator.
func (m *Manager) currentURL() *url.URL {
	if m.locator == nil {
		return nil
	}
	return m.locator.Current()
}
