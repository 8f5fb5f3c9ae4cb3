package deploy

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/cjfuller/labdb-manager/internal/command"
	"github.com/cjfuller/labdb-manager/internal/config"
)

const (
	backupTimeLayout = "20060102_150405"
	backupSuffix     = "_labdb_backup.dump"
	archiveSuffix    = ".tar.bz2"
)

// BackupFileName returns the uncompressed dump name for a backup taken at t.
func BackupFileName(t time.Time) string {
	return t.Format(backupTimeLayout) + backupSuffix
}

// ArchiveName returns the compressed archive name for a dump.
func ArchiveName(dumpName string) string {
	return dumpName + archiveSuffix
}

// ResolvePgDump returns the configured pg_dump path, or the one found on
// PATH, or plain "pg_dump" for the login shell to resolve.
func ResolvePgDump(cfg config.Database) string {
	if cfg.PgDump != "" {
		return cfg.PgDump
	}
	if path, err := exec.LookPath("pg_dump"); err == nil {
		return path
	}
	return "pg_dump"
}

// Backup describes one database backup.
type Backup struct {
	PgDump   string
	Host     string
	Database string
	Dir      string
	Taken    time.Time
}

// FileName is the uncompressed dump name.
func (b Backup) FileName() string {
	return BackupFileName(b.Taken)
}

// DumpPath is the full path of the uncompressed dump.
func (b Backup) DumpPath() string {
	return filepath.Join(b.Dir, b.FileName())
}

// ArchivePath is the full path of the compressed archive.
func (b Backup) ArchivePath() string {
	return ArchiveName(b.DumpPath())
}

// Script returns the shell text: dump, compress, remove the dump. If any
// step fails the dump is removed and the failing status is kept, so no
// uncompressed artifact is left for later steps to pick up.
func (b Backup) Script() string {
	return renderBackup(b.args()...)
}

func (b Backup) args() []string {
	return []string{b.PgDump, b.Host, b.Database, b.Dir, b.FileName()}
}

func renderBackup(a ...string) string {
	if len(a) < 5 {
		return "pg_dump -h <host> <database> > <dir>/<timestamp>" + backupSuffix +
			" && tar cjf <dir>/<timestamp>" + backupSuffix + archiveSuffix +
			" -C <dir> <timestamp>" + backupSuffix +
			" && rm -f <dir>/<timestamp>" + backupSuffix
	}
	pgDump, host, database, dir, name := a[0], a[1], a[2], a[3], a[4]
	dump := quote(filepath.Join(dir, name))
	steps := fmt.Sprintf("mkdir -p %s && %s -h %s %s > %s && tar cjf %s -C %s %s && rm -f %s",
		quote(dir),
		quote(pgDump), quote(host), quote(database), dump,
		quote(ArchiveName(filepath.Join(dir, name))), quote(dir), quote(name),
		dump)
	return fmt.Sprintf("{ %s; } || { status=$?; rm -f %s; exit $status; }", steps, dump)
}

// quote single-quotes s when it contains characters the shell would split
// or expand.
func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"$`\\*?[]{}()<>|&;#~!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// CreateBackup returns the backup command for b.
func CreateBackup(b Backup) command.Command {
	return command.New("create-backup", renderBackup, command.WithArgs(b.args()...))
}
