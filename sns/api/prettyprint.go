package api

import (
	"strconv"

	"github.com/oasisprotocol/sns-launch/common/cbor"
	"github.com/oasisprotocol/sns-launch/humanize"
)

const unsetText = "(unset)"

func stringOrUnset(s *string) string {
	if s == nil {
		return unsetText
	}
	return *s
}

func uint64OrUnset(v *uint64) string {
	if v == nil {
		return unsetText
	}
	return strconv.FormatUint(*v, 10)
}

func e8sOrUnset(v *uint64) string {
	if v == nil {
		return unsetText
	}
	return tokensFromE8s(*v)
}

func tokensFromE8s(e8s uint64) string {
	return humanize.Tokens(e8s).String()
}

func tokensOrUnset(t *Tokens) string {
	if t == nil {
		return unsetText
	}
	return t.String()
}

func durationOrUnset(d *Duration) string {
	if d == nil {
		return unsetText
	}
	return d.String()
}

func percentageOrUnset(p *Percentage) string {
	if p == nil {
		return unsetText
	}
	return p.String()
}

func cloneVia(src, dst interface{}) error {
	return cbor.Unmarshal(cbor.Marshal(src), dst)
}
