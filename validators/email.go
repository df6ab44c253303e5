package validators

import "regexp"

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidateEmail confere o e-mail contra o padrão usado no cadastro
func ValidateEmail(raw string) bool {
	return emailPattern.MatchString(raw)
}
