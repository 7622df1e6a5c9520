package specerr

import (
	"errors"
	"strings"
)

// List collects every error found in one pass so they can be reported together.
type List []error

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, err := range l {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

func (l List) Unwrap() []error {
	return l
}

// ErrorOrNil returns l as an error, or nil if it is empty.
func (l List) ErrorOrNil() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Flatten expands err into its individual errors. A List yields its members;
// any other error yields itself.
func Flatten(err error) []error {
	if err == nil {
		return nil
	}
	var l List
	if errors.As(err, &l) {
		return l
	}
	return []error{err}
}
