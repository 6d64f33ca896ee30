package userservice

import (
	"regexp"

	"github.com/sushihentaime/pressroom/internal/common"
)

var (
	EmailRX = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func validateRequired(v *common.Validator, value, field string) {
	v.Check(v.NotBlank(value), field, "must be provided")
}

func validateUsername(v *common.Validator, username string) {
	validateRequired(v, username, "username")
	v.Check(v.CheckStringLength(username, 0, 50), "username", "must not be more than 50 characters long")
}

func validateEmail(v *common.Validator, email string) {
	validateRequired(v, email, "email")
	v.Check(EmailRX.MatchString(email), "email", "must be a valid email address")
}

func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(len(password) <= 72, "password", "must not be more than 72 bytes long")
}

func validateRole(v *common.Validator, role Role) {
	v.Check(role.Valid(), "role", "must be one of ROLE_USER, ROLE_AUTHOR, ROLE_ADMIN")
}

func validateProfile(v *common.Validator, username, firstName, lastName, email string) {
	validateUsername(v, username)
	validateRequired(v, firstName, "firstName")
	validateRequired(v, lastName, "lastName")
	validateEmail(v, email)
}
