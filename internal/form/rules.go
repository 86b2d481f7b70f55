// Package form provides terminal form widgets with per-field validation.
//
// Validation mirrors the behaviour of browser form libraries: every field
// carries an ordered list of rules, only dirty fields report messages, and
// the message for a field is rebuilt from scratch after every change by
// RecomputeErrors.
package form

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Rule keys, used to identify which check failed.
const (
	KeyRequired  = "required"
	KeyMinLength = "minlength"
	KeyMaxLength = "maxlength"
	KeyPattern   = "pattern"
	KeyEmail     = "email"
)

// Rule is a single check with the message shown when it fails. Tag is the
// validator tag that performs the check.
type Rule struct {
	Key     string
	Tag     string
	Message string
}

// Rules maps field names to their ordered rules.
type Rules map[string][]Rule

// Errors maps field names to their accumulated validation message.
type Errors map[string]string

// Required fails on an empty value.
func Required(message string) Rule {
	return Rule{Key: KeyRequired, Tag: "required", Message: message}
}

// MinLength fails when a non-empty value has fewer than n characters.
func MinLength(n int, message string) Rule {
	return Rule{Key: KeyMinLength, Tag: fmt.Sprintf("min=%d", n), Message: message}
}

// MaxLength fails when a value has more than n characters.
func MaxLength(n int, message string) Rule {
	return Rule{Key: KeyMaxLength, Tag: fmt.Sprintf("max=%d", n), Message: message}
}

// Numeric fails when a non-empty value contains anything but digits.
func Numeric(message string) Rule {
	return Rule{Key: KeyPattern, Tag: "number", Message: message}
}

// Email fails when a non-empty value is not a syntactically valid address.
// The domain may be a single label, so "ada@localhost" passes.
func Email(message string) Rule {
	return Rule{Key: KeyEmail, Tag: tagMailbox, Message: message}
}

const tagMailbox = "mailbox"

var mailboxPattern = regexp.MustCompile("^[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+)*" +
	"@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// validMailbox caps the address at 254 characters and the local part at 64.
func validMailbox(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if n := utf8.RuneCountInString(value); n < 1 || n > 254 {
		return false
	}
	if at := strings.IndexByte(value, '@'); at < 1 || at > 64 {
		return false
	}
	return mailboxPattern.MatchString(value)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := validate.RegisterValidation(tagMailbox, validMailbox); err != nil {
			panic(err)
		}
	})
	return validate
}

// Failing returns the rules value does not satisfy, in rule order. Only
// the required rule applies to an empty value.
func Failing(value string, rules []Rule) []Rule {
	var failed []Rule
	for _, rule := range rules {
		if value == "" && rule.Key != KeyRequired {
			continue
		}
		if err := engine().Var(value, rule.Tag); err != nil {
			failed = append(failed, rule)
		}
	}
	return failed
}

// Valid reports whether every field satisfies all of its rules, regardless
// of whether it has been touched.
func Valid(values map[string]string, rules Rules) bool {
	for field, fieldRules := range rules {
		if len(Failing(values[field], fieldRules)) > 0 {
			return false
		}
	}
	return true
}

// RecomputeErrors rebuilds the validation message of every ruled field. A
// field that is untouched or valid maps to the empty string; otherwise its
// message is each failing rule's text followed by a single space.
func RecomputeErrors(values map[string]string, dirty map[string]bool, rules Rules) Errors {
	errs := make(Errors, len(rules))
	for field, fieldRules := range rules {
		errs[field] = ""
		if !dirty[field] {
			continue
		}
		for _, rule := range Failing(values[field], fieldRules) {
			errs[field] += rule.Message + " "
		}
	}
	return errs
}
