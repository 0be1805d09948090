// Package args parses a process argument vector into named flags and
// exposes typed accessors that never fail.
//
// Flags are written -name or --name, optionally followed by =value. Keys are
// stored in their single-dash form, so --name and -name are the same flag.
// A flag supplied as -noname turns -name off unless -name itself is present.
package args

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"erlang-solutions.com/argstore/pkg/errors"
	"erlang-solutions.com/argstore/pkg/result"
)

//go:generate mockgen -source=store.go -destination=mocks/mock_source.go -package=mocks Source

// Source supplies flag values from somewhere other than the command line.
type Source interface {
	Values() (map[string][]string, error)
}

type entry struct {
	values []string
	// hasValue is false for occurrences written without "=".
	hasValue bool
}

// Store holds the parsed flags. The zero value is an empty store ready for
// use; NewStore is equivalent.
type Store struct {
	mu         sync.RWMutex
	flags      map[string]*entry
	positional []string
}

func NewStore() *Store {
	return &Store{flags: make(map[string]*entry)}
}

// Parse replaces the store contents with the flags found in argv. argv[0] is
// the program name and is skipped.
func (s *Store) Parse(argv []string) {
	flags := make(map[string]*entry)
	var positional []string

	if len(argv) > 0 {
		for _, token := range argv[1:] {
			if !strings.HasPrefix(token, "-") {
				positional = append(positional, token)
				continue
			}

			key, value, hasValue := splitToken(token)
			e, ok := flags[key]
			if !ok {
				e = &entry{}
				flags[key] = e
			}
			e.values = append(e.values, value)
			e.hasValue = hasValue
		}
	}

	s.mu.Lock()
	s.flags = flags
	s.positional = positional
	s.mu.Unlock()
}

func splitToken(token string) (key, value string, hasValue bool) {
	key, value, hasValue = strings.Cut(token, "=")
	return Canonical(key), value, hasValue
}

// Canonical returns name with exactly one leading dash. Names that carry no
// dash at all (config file keys) get one added.
func Canonical(name string) string {
	if strings.HasPrefix(name, "--") {
		name = name[2:]
	} else if strings.HasPrefix(name, "-") {
		name = name[1:]
	}
	return "-" + name
}

// lookup reports the last value given for key and whether it was given with
// "=". Callers must hold s.mu.
func (s *Store) lookup(key string) (value string, hasValue, ok bool) {
	e, ok := s.flags[key]
	if !ok {
		return "", false, false
	}
	return e.values[len(e.values)-1], e.hasValue, true
}

func (s *Store) IsSet(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.flags[key]
	return ok
}

// Lookup returns the last value given for key. A flag given without a value
// yields an empty string.
func (s *Store) Lookup(key string) result.Result[string] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, _, ok := s.lookup(key)
	if !ok {
		return result.Err[string](errors.Wrap(errors.ErrNotSet, key))
	}
	return result.Ok(value)
}

func (s *Store) String(key, def string) string {
	return s.Lookup(key).Unwrap(def)
}

// Int returns def when key is absent and 0 when its value is not a number.
func (s *Store) Int(key string, def int64) int64 {
	r := s.Lookup(key)
	if r.IsErr() {
		return def
	}
	return result.FlatMap(r, parseInt).Unwrap(0)
}

func parseInt(value string) result.Result[int64] {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	return result.From(n, err)
}

func (s *Store) Bool(key string, def bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	direct := s.flagValue(key)
	negated := s.flagValue(NegatedName(key))
	return resolveBool(direct, negated, def)
}

func (s *Store) flagValue(key string) flagValue {
	value, hasValue, ok := s.lookup(key)
	return flagValue{present: ok, hasValue: hasValue, value: value}
}

// All returns every value given for key in the order supplied.
func (s *Store) All(key string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.flags[key]
	if !ok {
		return nil
	}
	return append([]string(nil), e.values...)
}

// SoftSet sets key to value unless it is already present, and reports whether
// it did.
func (s *Store) SoftSet(key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.flags[key]; ok {
		return false
	}
	s.ensureFlags()
	s.flags[key] = &entry{values: []string{value}, hasValue: true}
	return true
}

// ensureFlags allocates the flag map of a zero Store. Callers must hold s.mu.
func (s *Store) ensureFlags() {
	if s.flags == nil {
		s.flags = make(map[string]*entry)
	}
}

func (s *Store) SoftSetBool(key string, value bool) bool {
	if value {
		return s.SoftSet(key, "1")
	}
	return s.SoftSet(key, "0")
}

// Merge adds the values from src for keys that are not already present.
// Keys set on the command line are never overridden. When several source
// names map to the same flag, -name wins over --name, which wins over the
// bare name.
func (s *Store) Merge(src Source) error {
	values, err := src.Values()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ki, kj := Canonical(names[i]), Canonical(names[j])
		if ki != kj {
			return ki < kj
		}
		return nameRank(names[i]) < nameRank(names[j])
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureFlags()

	for _, name := range names {
		vals := values[name]
		key := Canonical(name)
		if _, ok := s.flags[key]; ok || len(vals) == 0 {
			continue
		}
		s.flags[key] = &entry{values: append([]string(nil), vals...), hasValue: true}
	}
	return nil
}

func nameRank(name string) int {
	switch {
	case strings.HasPrefix(name, "--"):
		return 1
	case strings.HasPrefix(name, "-"):
		return 0
	default:
		return 2
	}
}

func (s *Store) Positional() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.positional...)
}

func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.flags))
	for k := range s.flags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of every key and its values.
func (s *Store) Snapshot() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(map[string][]string, len(s.flags))
	for k, e := range s.flags {
		snap[k] = append([]string(nil), e.values...)
	}
	return snap
}
