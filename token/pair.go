package token

// Pair is the credential pair issued by the login endpoint: a short-lived
// access token whose payload this client decodes, and an opaque refresh token.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// IsZero reports whether no credentials are held.
func (p Pair) IsZero() bool {
	return p.Access == "" && p.Refresh == ""
}

// StoredPair is the persisted shape of a Pair. AccessToken duplicates Access
// for readers that predate the field rename and has no other meaning.
type StoredPair struct {
	Access      string `json:"access"`
	Refresh     string `json:"refresh"`
	AccessToken string `json:"access_token"`
}

// Stored converts a Pair into its persisted shape, filling the legacy
// duplicate field.
func (p Pair) Stored() StoredPair {
	return StoredPair{
		Access:      p.Access,
		Refresh:     p.Refresh,
		AccessToken: p.Access,
	}
}

// Pair strips the legacy duplicate and returns the in-memory credential pair.
func (s StoredPair) Pair() Pair {
	return Pair{Access: s.Access, Refresh: s.Refresh}
}
