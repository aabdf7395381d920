package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nanatgrail/prodigyspace/internal/codec"
	"github.com/nanatgrail/prodigyspace/internal/common"
)

// parsedArgs splits command words into free text and key=value options.
type parsedArgs struct {
	words []string
	opts  map[string]string
}

func parseArgs(args []string) parsedArgs {
	p := parsedArgs{opts: map[string]string{}}
	for _, a := range args {
		if k, v, ok := strings.Cut(a, "="); ok && isOptionKey(k) {
			p.opts[strings.ToLower(k)] = v
			continue
		}
		p.words = append(p.words, a)
	}
	return p
}

func isOptionKey(k string) bool {
	if k == "" {
		return false
	}
	for _, r := range k {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func (p parsedArgs) text() string { return strings.Join(p.words, " ") }

// first returns the first word and the rest joined.
func (p parsedArgs) first() (string, string) {
	if len(p.words) == 0 {
		return "", ""
	}
	return p.words[0], strings.Join(p.words[1:], " ")
}

func (p parsedArgs) opt(keys ...string) string {
	for _, k := range keys {
		if v, ok := p.opts[k]; ok {
			return v
		}
	}
	return ""
}

func (p parsedArgs) date(keys ...string) (*codec.Timestamp, error) {
	v := p.opt(keys...)
	if v == "" {
		return nil, nil
	}
	t, err := parseWhen(v)
	if err != nil {
		return nil, err
	}
	return codec.Ptr(t), nil
}

func (p parsedArgs) floatOpt(def float64, keys ...string) (float64, error) {
	v := p.opt(keys...)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", v, common.ErrInvalidInput)
	}
	return f, nil
}

func (p parsedArgs) intOpt(def int, keys ...string) (int, error) {
	v := p.opt(keys...)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", v, common.ErrInvalidInput)
	}
	return n, nil
}

func (p parsedArgs) list(keys ...string) []string {
	v := p.opt(keys...)
	if v == "" {
		return nil
	}
	return strings.Split(v, ",")
}

var whenLayouts = []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02_15:04"}

// parseWhen accepts a date, a date with a minute-precision time, or any form
// codec.ParseTime understands. Values without a zone are UTC.
func parseWhen(s string) (time.Time, error) {
	for _, l := range whenLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	t, err := codec.ParseTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
	}
	return t, nil
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", s, common.ErrInvalidInput)
	}
	return n, nil
}

func atof(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", s, common.ErrInvalidInput)
	}
	return f, nil
}

// matchID expands an id prefix to the single id it identifies. An unknown
// prefix is returned unchanged so the service reports it as not found.
func matchID[T any](items []T, id func(T) string, prefix string) (string, error) {
	var hit string
	for _, it := range items {
		v := id(it)
		if v == prefix {
			return v, nil
		}
		if strings.HasPrefix(v, prefix) {
			if hit != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous: %w", prefix, common.ErrInvalidInput)
			}
			hit = v
		}
	}
	if hit == "" {
		return prefix, nil
	}
	return hit, nil
}

const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}
