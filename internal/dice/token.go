package dice

import (
	"strconv"
	"strings"
)

// Continuation token wire contract, shared with messages already issued:
//
//	roll_button_<sides>_<wager|none>_<desired|none>_<nonce>
//
// Prefix, delimiter, and field order are fixed for interoperability; the
// prefix doubles as the format tag, so a future layout must use a new
// prefix rather than reordering these fields.
const (
	RepeatPrefix = "roll_button_"

	delimiter = "_"
	sentinel  = "none"
)

var ErrBadToken = errf("malformed roll token")

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }

// EncodeRepeat packs the roll parameters and an event nonce into the
// repeat button's custom id.
func EncodeRepeat(p Params, nonce string) string {
	p = p.Normalize()
	wager := p.Wager
	if wager == "" {
		wager = sentinel
	}
	desired := sentinel
	if p.HasDesired {
		desired = strconv.Itoa(p.Desired)
	}
	return RepeatPrefix + strings.Join([]string{
		strconv.Itoa(p.Sides), wager, desired, nonce,
	}, delimiter)
}

// DecodeRepeat reverses EncodeRepeat on the payload following the
// prefix. It fails closed: a wrong field count or a non-numeric numeric
// field is an error, never a roll with corrupted parameters. The wager
// may itself contain the delimiter, so sides anchors at the front,
// nonce and desired at the back, and the middle is rejoined.
func DecodeRepeat(payload string) (Params, string, error) {
	fields := strings.Split(payload, delimiter)
	if len(fields) < 4 {
		return Params{}, "", ErrBadToken
	}

	sides, err := strconv.Atoi(fields[0])
	if err != nil || sides <= 0 {
		return Params{}, "", ErrBadToken
	}

	nonce := fields[len(fields)-1]
	if nonce == "" {
		return Params{}, "", ErrBadToken
	}

	p := Params{Sides: sides}
	if d := fields[len(fields)-2]; d != sentinel {
		n, err := strconv.Atoi(d)
		if err != nil {
			return Params{}, "", ErrBadToken
		}
		p.Desired = n
		p.HasDesired = true
	}

	wager := strings.Join(fields[1:len(fields)-2], delimiter)
	if wager != sentinel {
		p.Wager = wager
	}
	return p, nonce, nil
}
