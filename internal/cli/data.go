package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/export"
	"github.com/nanatgrail/prodigyspace/internal/filex"
)

// export prints the export document, or writes it unencrypted into the
// backup directory.
func (a *App) export(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return usage("export [name]")
	}
	if len(args) == 0 {
		doc, err := a.backups.Export(ctx)
		if err != nil {
			return err
		}
		a.printf("%s\n", doc)
		return nil
	}

	path, err := a.backups.Write(ctx, args[0], nil)
	if err != nil {
		return err
	}
	a.done("Exported to %s", path)
	return nil
}

// backup writes an optionally encrypted export into the backup directory.
func (a *App) backup(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return usage("backup [name]")
	}
	name := ""
	if len(args) == 1 {
		name = args[0]
	}

	pass, err := GetPassword(a.reader, a.fd, "Passphrase (empty for none)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	if len(pass) > 0 {
		confirm, err := GetPassword(a.reader, a.fd, "Repeat passphrase", a.out)
		if err != nil {
			return err
		}
		same := bytes.Equal(pass, confirm)
		common.WipeByteArray(confirm)
		if !same {
			return fmt.Errorf("passphrases do not match: %w", common.ErrInvalidInput)
		}
	}

	path, err := a.backups.Write(ctx, name, pass)
	if err != nil {
		return err
	}
	a.done("Backup written to %s", path)
	return nil
}

func (a *App) listBackups(context.Context, []string) error {
	names, err := a.backups.List()
	if err != nil {
		return err
	}
	a.heading(fmt.Sprintf("Backups in %s (%d)", a.config.BackupDir, len(names)))
	for _, n := range names {
		a.printf("  %s\n", n)
	}
	return nil
}

// withPassphrase runs fn without a passphrase first and asks for one only
// when the file turns out to be encrypted.
func (a *App) withPassphrase(fn func(pass []byte) (int, error)) (int, error) {
	n, err := fn(nil)
	if !errors.Is(err, common.ErrBadPassphrase) {
		return n, err
	}

	pass, perr := GetPassword(a.reader, a.fd, "Passphrase", a.out)
	if perr != nil {
		return 0, perr
	}
	defer common.WipeByteArray(pass)
	if len(pass) == 0 {
		return 0, err
	}
	return fn(pass)
}

// importFile merges a backup into the current data. Keys missing from the
// file are kept.
func (a *App) importFile(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("import <file>")
	}
	n, err := a.withPassphrase(func(pass []byte) (int, error) {
		return a.backups.Import(ctx, args[0], pass)
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("nothing imported from %s: %w", args[0], common.ErrInvalidInput)
	}
	if err := a.reg.ReloadAll(ctx); err != nil {
		return err
	}
	a.done("Imported %d collections", n)
	return nil
}

// restore replaces all data with a backup.
func (a *App) restore(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("restore <file>")
	}
	n, err := a.withPassphrase(func(pass []byte) (int, error) {
		return a.backups.Restore(ctx, args[0], pass)
	})
	if err != nil {
		return err
	}
	if err := a.reg.ReloadAll(ctx); err != nil {
		return err
	}
	a.done("Restored %d collections", n)
	return nil
}

func (a *App) csv(_ context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("csv todos|expenses [file]")
	}

	var table export.Table
	switch args[0] {
	case "todos":
		table = a.reg.Todos.CSV()
	case "expenses":
		table = a.reg.Expenses.CSV()
	default:
		return usage("csv todos|expenses [file]")
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, table); err != nil {
		return err
	}

	dir, err := filex.EnsureDir(a.config.BackupDir)
	if err != nil {
		return err
	}
	name := export.FileName(args[0], a.clock.Now().UTC().Format("2006-01-02"))
	if len(args) == 2 {
		name = args[1]
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, filepath.Base(name))
	}

	if err := filex.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	a.done("Wrote %d rows to %s", table.Len(), path)
	return nil
}
