package nativemod

import "strings"

// Name is a parsed dotted logical name of the form "package.symbol". When
// the input carries no dot, package and symbol are both the whole string,
// matching how a bare function name resolves against a bare package of the
// same name.
type Name struct {
	Package string
	Symbol  string
}

// ParseName splits s at its last '.'. An empty string fails with ErrBadName.
func ParseName(s string) (Name, error) {
	if s == "" {
		return Name{}, ErrBadName
	}
	k := strings.LastIndexByte(s, '.')
	if k < 0 {
		return Name{Package: s, Symbol: s}, nil
	}
	pkg, sym := s[:k], s[k+1:]
	if pkg == "" || sym == "" {
		return Name{}, ErrBadName
	}
	return Name{Package: pkg, Symbol: sym}, nil
}
