package domain

// Credential is an admin bearer token obtained from the login exchange.
//
// The secret used to obtain it is never kept. Claims is nil when the token
// could not be decoded; decoding is informational only.
type Credential struct {
	Token  string
	Claims map[string]string
}

// IsZero reports whether the credential holds no token.
func (c Credential) IsZero() bool {
	return c.Token == ""
}

// AuthorizationHeader returns the header value sent with authenticated requests.
func (c Credential) AuthorizationHeader() string {
	if c.Token == "" {
		return ""
	}
	return "Bearer " + c.Token
}
