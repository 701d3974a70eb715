// Package validator provides rule-based input validation with per-field
// error reporting.
//
//	err := validator.Apply(
//	    validator.WithMessage(validator.Required("username", in.Username), "Username is required"),
//	    validator.MinLen("password", in.Password, 8),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//	    // errs.Map() -> {"password": ["must be at least 8 characters long"]}
//	}
//
// Rules are evaluated lazily by Apply; every failing rule is reported, not
// only the first one.
package validator
