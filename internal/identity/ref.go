package identity

// Historic data stores registered submitter ids in two shapes: the
// backend's 24-hex internal id or the USR business key. UserRef is the
// tagged union that keeps that distinction explicit so lookups never issue
// a malformed internal-id query.

type RefKind string

const (
	RefInternal RefKind = "internal"
	RefExternal RefKind = "external"
)

type UserRef struct {
	Kind  RefKind
	Value string
}

// ClassifyID sorts an identifier into internal (24-character hex) or
// external (anything else). Pure function; the only place id shapes are
// sniffed.
func ClassifyID(id string) UserRef {
	if isHex24(id) {
		return UserRef{Kind: RefInternal, Value: id}
	}
	return UserRef{Kind: RefExternal, Value: id}
}

func isHex24(s string) bool {
	if len(s) != 24 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
