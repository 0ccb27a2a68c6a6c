package errors

// Kind classifies where a request failed.
type Kind uint8

const (
	// KindUnknown is the zero value for errors created outside the kit.
	KindUnknown Kind = iota
	// KindInvalid covers bad input detected before any I/O.
	KindInvalid
	// KindEncode means the request body could not be serialized.
	KindEncode
	// KindTransport means the round trip did not complete.
	KindTransport
	// KindProtocol means the server answered with a non-2xx status.
	KindProtocol
	// KindDecode means a 2xx body was not valid JSON.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindEncode:
		return "encode"
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	if e, ok := AsError(err); ok {
		return e.kind
	}
	return KindUnknown
}

// IsKind reports whether err's chain holds an *Error of kind k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// CodeOf returns the HTTP status carried by err, or UnknownCode.
func CodeOf(err error) int {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return UnknownCode
}
