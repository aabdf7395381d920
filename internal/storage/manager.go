// Package storage wraps the key-value backend with versioned envelopes and
// whole-store export, import and restore.
//
// Every operation is best-effort: failures are logged and swallowed so a
// broken backend never takes the application down. SetItemErr exists for
// callers that need the error.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/logging"
	"github.com/nanatgrail/prodigyspace/internal/repositories/kv"
)

type Manager struct {
	repo     kv.Repository
	clock    clockwork.Clock
	log      logging.Logger
	version  string
	migrator Migrator
}

type Option func(*Manager)

func WithClock(c clockwork.Clock) Option { return func(m *Manager) { m.clock = c } }

func WithLogger(l logging.Logger) Option { return func(m *Manager) { m.log = l } }

func WithMigrator(mg Migrator) Option { return func(m *Manager) { m.migrator = mg } }

// WithVersion overrides the version written into new envelopes.
func WithVersion(v string) Option { return func(m *Manager) { m.version = v } }

func NewManager(repo kv.Repository, opts ...Option) *Manager {
	m := &Manager{
		repo:    repo,
		clock:   clockwork.NewRealClock(),
		log:     logging.Discard(),
		version: CurrentVersion,
	}
	for _, o := range opts {
		o(m)
	}
	m.log = m.log.With("component", "storage")
	if m.migrator == nil {
		m.migrator = WarnMigrator{Log: m.log, Current: m.version}
	}
	return m
}

func (m *Manager) Version() string { return m.version }

// SetItem stores value under key inside a fresh envelope. Errors are logged.
func (m *Manager) SetItem(ctx context.Context, key string, value any) {
	if err := m.SetItemErr(ctx, key, value); err != nil {
		m.log.Error(ctx, "error saving to storage", "key", key, "err", err)
	}
}

// SetItemErr is SetItem returning the failure instead of logging it.
func (m *Manager) SetItemErr(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return m.SetRaw(ctx, key, data)
}

// SetRaw stores already-encoded JSON under key inside a fresh envelope.
func (m *Manager) SetRaw(ctx context.Context, key string, data json.RawMessage) error {
	env, err := json.Marshal(Envelope{
		Data:      data,
		Timestamp: m.clock.Now().UnixMilli(),
		Version:   m.version,
	})
	if err != nil {
		return fmt.Errorf("marshal envelope %s: %w", key, err)
	}
	if err := m.repo.Set(ctx, key, string(env)); err != nil {
		return err
	}
	return nil
}

// GetItem decodes the payload stored under key into out. It reports false
// when the key is absent or the stored value cannot be decoded; the latter
// is logged.
func (m *Manager) GetItem(ctx context.Context, key string, out any) bool {
	data, ok := m.GetRaw(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		m.log.Error(ctx, "error decoding stored data", "key", key, "err", err)
		return false
	}
	return true
}

// GetRaw returns the envelope payload under key after version migration.
func (m *Manager) GetRaw(ctx context.Context, key string) (json.RawMessage, bool) {
	data, err := m.getRaw(ctx, key)
	if err != nil {
		m.log.Error(ctx, "error reading from storage", "key", key, "err", err)
		return nil, false
	}
	return data, data != nil
}

func (m *Manager) getRaw(ctx context.Context, key string) (json.RawMessage, error) {
	raw, ok, err := m.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}

	if !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("malformed envelope: invalid JSON")
	}

	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil || (env.Data == nil && env.Version == "") {
		// written without an envelope
		env = Envelope{Data: json.RawMessage(raw), Version: LegacyVersion}
	}
	if env.Data == nil || bytes.Equal(env.Data, []byte("null")) {
		return nil, nil
	}

	if env.Version != m.version {
		data, err := m.migrator.Migrate(ctx, key, env.Version, env.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrVersionMismatch, env.Version, err)
		}
		return data, nil
	}
	return env.Data, nil
}

// RemoveItem deletes key. Errors are logged.
func (m *Manager) RemoveItem(ctx context.Context, key string) {
	if err := m.repo.Delete(ctx, key); err != nil {
		m.log.Error(ctx, "error removing from storage", "key", key, "err", err)
	}
}

// Clear deletes every key. Errors are logged.
func (m *Manager) Clear(ctx context.Context) {
	if err := m.repo.Clear(ctx); err != nil {
		m.log.Error(ctx, "error clearing storage", "err", err)
	}
}

// ExportData renders the whole store as a JSON object mapping each key to
// its raw stored string, keys sorted, indented by two spaces.
func (m *Manager) ExportData(ctx context.Context) (string, error) {
	pairs, err := m.repo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pairs); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// ImportData writes every pair of a JSON object produced by ExportData.
//
// The document is parsed before anything is written; a malformed document
// is logged and nothing changes. Values are written verbatim. A failed write
// is logged and the remaining pairs are still attempted; earlier writes are
// kept. It returns how many keys were written.
func (m *Manager) ImportData(ctx context.Context, data string) int {
	pairs, err := parseExport(data)
	if err != nil {
		m.log.Error(ctx, "error importing data", "err", err)
		return 0
	}

	written := 0
	for _, key := range sortedKeys(pairs) {
		if err := m.repo.Set(ctx, key, pairs[key]); err != nil {
			m.log.Error(ctx, "error importing key", "key", key, "err", err)
			continue
		}
		written++
	}
	return written
}

// RestoreData replaces the whole store with the pairs of an export document
// in one step. Unlike ImportData it either applies everything or nothing.
func (m *Manager) RestoreData(ctx context.Context, data string) (int, error) {
	pairs, err := parseExport(data)
	if err != nil {
		return 0, err
	}
	if err := m.repo.Replace(ctx, pairs); err != nil {
		return 0, fmt.Errorf("restore: %w", err)
	}
	return len(pairs), nil
}

// parseExport reads a flat JSON object. String values are taken as-is; any
// other JSON value is kept as its JSON text.
func parseExport(data string) (map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: export must be a JSON object", common.ErrInvalidInput)
	}

	pairs := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			pairs[k] = s
			continue
		}
		pairs[k] = string(v)
	}
	return pairs, nil
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
