package validators

import (
	"errors"
	"unicode/utf8"
)

var ErrAboutMeTooLong = errors.New("about me must be at most 140 characters long")

func AboutMeValidator(a string) error {
	if utf8.RuneCountInString(a) > 140 {
		return ErrAboutMeTooLong
	}

	return nil
}
