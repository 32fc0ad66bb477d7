//
// Package identity turns the hand-typed student identifiers found in
// assessment sheets into canonical institutional email addresses, e.g.
// "HM 08298" -> "hm08298@st.habib.edu.pk".
//
package identity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/HammadMal/STRP-1/internal/outcome"
)

// DefaultDomain is the institutional student email domain.
const DefaultDomain = "st.habib.edu.pk"

var localPart = regexp.MustCompile(`^[a-z]{2}[0-9]{5}$`)

// Normalizer resolves raw identifiers against one email domain.
type Normalizer struct {
	suffix string
}

// New returns a Normalizer for domain; an empty domain uses DefaultDomain.
func New(domain string) *Normalizer {
	domain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "@")
	if domain == "" {
		domain = DefaultDomain
	}
	return &Normalizer{suffix: "@" + domain}
}

// Suffix returns the "@domain" appended to canonical identifiers.
func (n *Normalizer) Suffix() string { return n.suffix }

//
// Canonical resolves one raw identifier, trying in order:
// an already suffixed address, the bare two-letter/five-digit form,
// the value with punctuation stripped, and finally the first two
// letters and first five digits found anywhere in the value.
//
func (n *Normalizer) Canonical(raw string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))

	if strings.HasSuffix(v, n.suffix) {
		local := strings.TrimSuffix(v, n.suffix)
		if localPart.MatchString(local) {
			return v, true
		}
		return "", false
	}

	if localPart.MatchString(v) {
		return v + n.suffix, true
	}

	stripped := strings.Map(func(r rune) rune {
		if isAlnum(r) {
			return r
		}
		return -1
	}, v)
	if localPart.MatchString(stripped) {
		return stripped + n.suffix, true
	}

	var letters, digits []rune
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z' && len(letters) < 2:
			letters = append(letters, r)
		case r >= '0' && r <= '9' && len(digits) < 5:
			digits = append(digits, r)
		}
	}
	if picked := string(letters) + string(digits); localPart.MatchString(picked) {
		return picked + n.suffix, true
	}
	return "", false
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

//
// Normalize rekeys every record by its canonical identifier. Every
// record is checked before returning, so the *ValidationError lists all
// offending identifiers at once. Two raw identifiers that collapse onto
// the same canonical one are also reported.
//
func (n *Normalizer) Normalize(records []outcome.StudentRecord) (map[string]outcome.StudentRecord, error) {
	out := make(map[string]outcome.StudentRecord, len(records))
	verr := &ValidationError{}

	for _, rec := range records {
		id, ok := n.Canonical(rec.ID)
		if !ok {
			verr.add(Failure{
				Raw:    rec.ID,
				Row:    rec.Row,
				Reason: fmt.Sprintf("does not match two letters and five digits (e.g. ab12345%s)", n.suffix),
			})
			continue
		}
		if prev, dup := out[id]; dup {
			verr.add(Failure{
				Raw:    rec.ID,
				Row:    rec.Row,
				Reason: fmt.Sprintf("resolves to %s, already used by %q in row %d", id, prev.ID, prev.Row),
			})
			continue
		}
		rec.ID = id
		out[id] = rec
	}

	if verr.Len() > 0 {
		return nil, verr
	}
	return out, nil
}
