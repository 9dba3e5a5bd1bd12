package infra

import (
	"errors"

	"coupon-wallet/internal/pkg/errs"
)

type RepositoryErrorKind string

// Infrastructure-specific error kinds
const (
	KindNotFound      RepositoryErrorKind = "NOT_FOUND"
	KindNotConfigured RepositoryErrorKind = "NOT_CONFIGURED"
	KindUpstream      RepositoryErrorKind = "UPSTREAM_FAILURE"
)

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr tags a low-level store failure with a kind; kind defaults to
// UPSTREAM_FAILURE when omitted.
func WrapRepoErr(msg string, err error, kinds ...RepositoryErrorKind) error {
	kind := KindUpstream
	if len(kinds) > 0 {
		kind = kinds[0]
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
