// Package users resolves numeric uids to display names. Resolution sits
// behind a one-method interface so the render path can be tested with a
// fixed mapping instead of the host's user database.
package users

import (
	"fmt"
	"os/user"
	"strconv"
)

// Resolver maps an owning uid to a display name.
type Resolver interface {
	Name(uid uint32) string
}

// Passwd resolves names through the system user database, caching results
// since a sampling pass looks the same uids up repeatedly. Unknown uids
// render as "uid:<n>".
type Passwd struct {
	cache map[uint32]string
}

func NewPasswd() *Passwd {
	return &Passwd{cache: make(map[uint32]string)}
}

func (p *Passwd) Name(uid uint32) string {
	if name, ok := p.cache[uid]; ok {
		return name
	}
	name := Fallback(uid)
	if u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10)); err == nil && u.Username != "" {
		name = u.Username
	}
	p.cache[uid] = name
	return name
}

// Static resolves names from a fixed uid→name map, falling back like Passwd
// for absent entries. Intended for tests.
type Static map[uint32]string

func (s Static) Name(uid uint32) string {
	if name, ok := s[uid]; ok {
		return name
	}
	return Fallback(uid)
}

// Fallback is the display name used when a uid has no known username.
func Fallback(uid uint32) string {
	return fmt.Sprintf("uid:%d", uid)
}
