// Package backup writes export documents to disk, optionally sealed with a
// passphrase, and reads them back for import or restore.
//
// An encrypted backup is a small JSON wrapper around the sealed export:
//
//	{"format":"prodigyspace-backup","version":1,"kdf":"argon2id",
//	 "salt":"...","nonce":"...","data":"..."}
//
// with salt, nonce and data base64-encoded. A plain backup is the export
// document itself.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/cryptox"
	"github.com/nanatgrail/prodigyspace/internal/filex"
	"github.com/nanatgrail/prodigyspace/internal/logging"
)

const (
	format  = "prodigyspace-backup"
	version = 1
	kdf     = "argon2id"

	plainExt     = ".json"
	encryptedExt = ".enc"
)

type sealed struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
	KDF     string `json:"kdf"`
	Salt    []byte `json:"salt"`
	Nonce   []byte `json:"nonce"`
	Data    []byte `json:"data"`
}

// Source is the storage side of a backup.
type Source interface {
	ExportData(ctx context.Context) (string, error)
	ImportData(ctx context.Context, data string) int
	RestoreData(ctx context.Context, data string) (int, error)
}

type Service struct {
	src   Source
	dir   string
	clock clockwork.Clock
	log   logging.Logger
}

func New(src Source, dir string, clock clockwork.Clock, log logging.Logger) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Service{src: src, dir: dir, clock: clock, log: log}
}

// Encrypt seals plaintext under a key derived from passphrase with a fresh
// salt. The key is wiped before returning.
func Encrypt(plaintext, passphrase []byte) ([]byte, error) {
	salt, err := cryptox.NewSalt()
	if err != nil {
		return nil, err
	}

	key := cryptox.DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	data, nonce, err := cryptox.Seal(plaintext, key)
	if err != nil {
		return nil, fmt.Errorf("encryption error: %w", err)
	}

	return json.Marshal(sealed{
		Format:  format,
		Version: version,
		KDF:     kdf,
		Salt:    salt,
		Nonce:   nonce,
		Data:    data,
	})
}

// Decrypt opens a document produced by Encrypt.
func Decrypt(b, passphrase []byte) ([]byte, error) {
	s, ok := parseSealed(b)
	if !ok {
		return nil, fmt.Errorf("%w: not an encrypted backup", common.ErrInvalidInput)
	}
	if s.Version != version || s.KDF != kdf {
		return nil, fmt.Errorf("%w: unsupported backup version %d (%s)", common.ErrInvalidInput, s.Version, s.KDF)
	}

	key := cryptox.DeriveKey(passphrase, s.Salt)
	defer common.WipeByteArray(key)

	return cryptox.Open(s.Data, s.Nonce, key)
}

// IsEncrypted reports whether b looks like an Encrypt result.
func IsEncrypted(b []byte) bool {
	_, ok := parseSealed(b)
	return ok
}

func parseSealed(b []byte) (sealed, bool) {
	var s sealed
	if err := json.Unmarshal(b, &s); err != nil {
		return sealed{}, false
	}
	return s, s.Format == format
}

// Export returns the current export document.
func (s *Service) Export(ctx context.Context) (string, error) {
	return s.src.ExportData(ctx)
}

// FileName is the default backup name for the instant now.
func FileName(now clockwork.Clock, encrypted bool) string {
	ext := plainExt
	if encrypted {
		ext = encryptedExt
	}
	return "prodigyspace-backup_" + now.Now().UTC().Format("2006-01-02_150405") + ext
}

// Write exports the store into the backup directory and returns the file
// path. An empty name picks FileName; a non-empty passphrase encrypts.
func (s *Service) Write(ctx context.Context, name string, passphrase []byte) (string, error) {
	doc, err := s.src.ExportData(ctx)
	if err != nil {
		return "", err
	}

	payload := []byte(doc)
	if len(passphrase) > 0 {
		payload, err = Encrypt(payload, passphrase)
		if err != nil {
			return "", err
		}
	}

	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = FileName(s.clock, len(passphrase) > 0)
	}
	path := filepath.Join(dir, filepath.Base(name))

	if err := filex.WriteFileAtomic(path, payload, 0o600); err != nil {
		return "", err
	}

	s.log.Info(ctx, "backup written", "path", path, "encrypted", len(passphrase) > 0)
	return path, nil
}

// Read returns the export document stored at path, decrypting it when it
// is sealed. Relative paths are looked up in the backup directory first.
func (s *Service) Read(ctx context.Context, path string, passphrase []byte) (string, error) {
	b, err := os.ReadFile(s.resolve(path))
	if err != nil {
		return "", fmt.Errorf("read backup: %w", err)
	}

	if !IsEncrypted(b) {
		return string(b), nil
	}
	if len(passphrase) == 0 {
		return "", fmt.Errorf("%w: backup is encrypted", common.ErrBadPassphrase)
	}

	plain, err := Decrypt(b, passphrase)
	if err != nil {
		s.log.Warn(ctx, "backup decryption failed", "path", path, "err", err)
		return "", err
	}
	return string(plain), nil
}

// Import merges the backup at path into the store.
func (s *Service) Import(ctx context.Context, path string, passphrase []byte) (int, error) {
	doc, err := s.Read(ctx, path, passphrase)
	if err != nil {
		return 0, err
	}
	return s.src.ImportData(ctx, doc), nil
}

// Restore replaces the store with the backup at path.
func (s *Service) Restore(ctx context.Context, path string, passphrase []byte) (int, error) {
	doc, err := s.Read(ctx, path, passphrase)
	if err != nil {
		return 0, err
	}
	return s.src.RestoreData(ctx, doc)
}

// List returns the backup files in the backup directory, oldest first.
func (s *Service) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != plainExt && ext != encryptedExt) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *Service) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	candidate := filepath.Join(s.dir, path)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return path
}
