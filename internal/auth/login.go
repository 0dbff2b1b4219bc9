package auth

import "strings"

// Credentials is the sealed set of login paths. Exactly one concrete
// type reaches Service.Login per call, so the dispatch is a type
// switch rather than a chain of nullable-field checks.
type Credentials interface {
	credentials()
}

type EmailPassword struct {
	Email    string
	Password string
}

type MobilePassword struct {
	Mobile   string
	Password string
}

type GoogleToken struct {
	Token string
}

func (EmailPassword) credentials()  {}
func (MobilePassword) credentials() {}
func (GoogleToken) credentials()    {}

// CredentialsFromRequest classifies a wire-level login request into
// exactly one Credentials value. Priority is fixed: a Google token
// wins over email, email over mobile; the losing fields are ignored,
// never attempted as fallback. Identifiers are trimmed here so login
// lookups see the same canonical value registration stores.
func CredentialsFromRequest(email, mobile, password, googleToken string) (Credentials, error) {
	email = strings.TrimSpace(email)
	mobile = strings.TrimSpace(mobile)
	googleToken = strings.TrimSpace(googleToken)

	switch {
	case googleToken != "":
		return GoogleToken{Token: googleToken}, nil
	case email != "":
		return EmailPassword{Email: email, Password: password}, nil
	case mobile != "":
		return MobilePassword{Mobile: mobile, Password: password}, nil
	default:
		return nil, authErrors.New(ErrMissingLoginField)
	}
}
