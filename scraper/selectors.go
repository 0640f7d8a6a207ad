package scraper

// InputCandidates locate the phone number field, most specific first.
var InputCandidates = []string{
	`input[type="tel"]`,
	`input[name*="phone"]`,
	`input[name*="numero"]`,
	`input[name*="msisdn"]`,
	`input[placeholder*="numéro"]`,
	`input[placeholder*="phone"]`,
	`input[id*="phone"]`,
	`input[id*="numero"]`,
}

// ButtonCandidates locate the control that submits the lookup form.
var ButtonCandidates = []string{
	`button[type="submit"]`,
	`input[type="submit"]`,
	`button.btn-primary`,
	`button.submit-btn`,
	`button[class*="submit"]`,
	`button[class*="validate"]`,
	`button[class*="confirm"]`,
}

// firstMatch evaluates try on each candidate in order and returns the first
// candidate for which it succeeds. Later candidates are never tried.
func firstMatch[T any](candidates []string, try func(string) (T, bool)) (T, string, bool) {
	for _, c := range candidates {
		if v, ok := try(c); ok {
			return v, c, true
		}
	}
	var zero T
	return zero, "", false
}
