package http

import "regexp"

var (
	emailRegex = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	// International format, optional leading +
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

func ValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

func ValidPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

// ValidateRegister returns one message per failed field, empty when valid.
func ValidateRegister(req RegisterRequest) []string {
	var errs []string
	if req.FirstName == "" {
		errs = append(errs, "First Name is required")
	}
	if req.LastName == "" {
		errs = append(errs, "Last Name is required")
	}
	if req.Username == "" {
		errs = append(errs, "Username is required")
	}
	if req.Email == "" {
		errs = append(errs, "Email is required")
	} else if !ValidEmail(req.Email) {
		errs = append(errs, "Invalid email format")
	}
	if req.Password == "" {
		errs = append(errs, "Password is required")
	}
	if req.Phone == "" {
		errs = append(errs, "Phone number is required")
	} else if !ValidPhone(req.Phone) {
		errs = append(errs, "Invalid phone number format")
	}
	if req.Title == "" {
		errs = append(errs, "Title is required")
	}
	if req.Image == "" {
		errs = append(errs, "Image is required")
	}
	return errs
}

func ValidateLogin(req LoginRequest) []string {
	var errs []string
	if req.Username == "" {
		errs = append(errs, "Username is required")
	}
	if req.Password == "" {
		errs = append(errs, "Password is required")
	}
	return errs
}

func ValidateResetPassword(req ResetPasswordRequest) []string {
	var errs []string
	if req.Email == "" {
		errs = append(errs, "Email is required")
	} else if !ValidEmail(req.Email) {
		errs = append(errs, "Invalid email format")
	}
	if req.Code == "" {
		errs = append(errs, "Code is required")
	}
	if req.NewPassword == "" {
		errs = append(errs, "New password is required")
	}
	if req.NewPassword != req.ConfirmPassword {
		errs = append(errs, "Passwords do not match")
	}
	return errs
}
