/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logic.go
Description: Built-in plugins whose validation needs code rather than a pattern: email
addresses, GUIDs, IPv4 addresses, URLs, US social security numbers and payment card
numbers.
*/

package plugins

import (
	"net/mail"
	"net/netip"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/kleascm/columnscout/pkg/lattice"
)

// logic is a plugin validated by a Go function
type logic struct {
	base
	valid func(string) bool
}

func (l *logic) IsValid(value string) bool {
	return l.valid(value)
}

func logicPlugins() []Plugin {
	str := []lattice.BaseType{lattice.String}
	return []Plugin{
		&logic{
			base: base{qualifier: "EMAIL", baseTypes: str, priority: 100,
				regexp: `[\w.%+-]+@[\w.-]+\.[A-Za-z]{2,}`},
			valid: validEmail,
		},
		&logic{
			base: base{qualifier: "GUID", baseTypes: str, priority: 100,
				regexp: `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`},
			valid: validGUID,
		},
		&logic{
			base: base{qualifier: "IPADDRESS.IPV4", baseTypes: str, priority: 100,
				regexp: `\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`},
			valid: validIPv4,
		},
		&logic{
			base: base{qualifier: "URI.URL", baseTypes: str, priority: 90,
				regexp: `(?i)(https?|ftp)://[^\s/$.?#][^\s]*`},
			valid: validURL,
		},
		&logic{
			base: base{qualifier: "IDENTITY.SSN_US", baseTypes: str, priority: 90,
				regexp: `\d{3}-\d{2}-\d{4}`},
			valid: validSSN,
		},
		&logic{
			base: base{qualifier: "CREDIT_CARD", baseTypes: []lattice.BaseType{lattice.Long, lattice.String},
				priority: 85, regexp: `(?:\d[ -]?){12,18}\d`},
			valid: validCard,
		},
	}
}

func validEmail(v string) bool {
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(v, '@')
	return at > 0 && strings.Contains(v[at+1:], ".")
}

func validGUID(v string) bool {
	if len(v) != 36 {
		return false
	}
	_, err := uuid.Parse(v)
	return err == nil
}

func validIPv4(v string) bool {
	addr, err := netip.ParseAddr(v)
	return err == nil && addr.Is4()
}

func validURL(v string) bool {
	u, err := url.Parse(v)
	if err != nil || u.Host == "" {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp":
		return true
	}
	return false
}

// validSSN applies the issuance rules: no 000, 666 or 9xx area, no zero group or serial
func validSSN(v string) bool {
	if len(v) != 11 || v[3] != '-' || v[6] != '-' {
		return false
	}
	digits := v[:3] + v[4:6] + v[7:]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	area, group, serial := digits[:3], digits[3:5], digits[5:]
	if area == "000" || area == "666" || area[0] == '9' {
		return false
	}
	return group != "00" && serial != "0000"
}

// validCard checks length and the Luhn checksum, ignoring single space or dash separators
func validCard(v string) bool {
	var digits []byte
	for i := 0; i < len(v); i++ {
		switch c := v[i]; {
		case c >= '0' && c <= '9':
			digits = append(digits, c-'0')
		case (c == ' ' || c == '-') && i > 0 && i < len(v)-1:
		default:
			return false
		}
	}
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i])
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
