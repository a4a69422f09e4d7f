package errors

// Kind classifies who is at fault for a failure.
type Kind int

const (
	// KindInternal is a fault inside the service.
	KindInternal Kind = iota
	// KindClient is bad input from the caller.
	KindClient
	// KindUpstream is a failing or slow dependency (model API, image API, fetched page).
	KindUpstream
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindClient:
		return "client"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Kind returns the kind of this error.
func (e *Errno) Kind() Kind {
	switch {
	case IsClientError(e.Code):
		return KindClient
	case IsUpstreamError(e.Code):
		return KindUpstream
	default:
		return KindInternal
	}
}

// KindOf returns the kind of any error. Errors that are not an Errno are internal.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	return FromError(err).Kind()
}
