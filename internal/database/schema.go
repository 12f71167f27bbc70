package database

import (
	"context"
	"database/sql"
)

// schema holds the DDL for every table the application touches. All ids
// are CHAR(36) UUID strings generated application-side so that records
// keep stable opaque identifiers across environments. Statements are
// idempotent; EnsureSchema runs at startup before the server accepts
// traffic.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            CHAR(36) PRIMARY KEY,
		email         VARCHAR(255) NOT NULL UNIQUE,
		name          VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(32)  NOT NULL,
		is_active     TINYINT(1)   NOT NULL DEFAULT 1,
		created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS jurusan (
		id           CHAR(36) PRIMARY KEY,
		kode_jurusan VARCHAR(16)  NOT NULL UNIQUE,
		nama_jurusan VARCHAR(255) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS kelas (
		id            CHAR(36) PRIMARY KEY,
		tingkatan     VARCHAR(8)   NOT NULL,
		jurusan_id    CHAR(36)     NOT NULL,
		nama_kelas    VARCHAR(255) NOT NULL,
		wali_kelas_id CHAR(36)     NULL,
		KEY idx_kelas_jurusan (jurusan_id),
		KEY idx_kelas_wali (wali_kelas_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS siswa (
		id            CHAR(36) PRIMARY KEY,
		nis           VARCHAR(32)  NOT NULL,
		nisn          VARCHAR(32)  NOT NULL,
		nama_lengkap  VARCHAR(255) NOT NULL,
		jk            CHAR(1)      NOT NULL,
		tanggal_lahir VARCHAR(32)  NOT NULL,
		kelas_id      CHAR(36)     NOT NULL,
		foto          TEXT         NULL,
		is_active     TINYINT(1)   NOT NULL DEFAULT 1,
		KEY idx_siswa_kelas (kelas_id),
		KEY idx_siswa_active (is_active)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS guru (
		id      CHAR(36) PRIMARY KEY,
		user_id CHAR(36)     NOT NULL,
		nama    VARCHAR(255) NOT NULL,
		nuptk   VARCHAR(32)  NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS mapel (
		id         CHAR(36) PRIMARY KEY,
		kode_mapel VARCHAR(16)  NOT NULL UNIQUE,
		nama_mapel VARCHAR(255) NOT NULL,
		jenis      VARCHAR(16)  NOT NULL,
		guru_id    CHAR(36)     NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS tahun_ajaran (
		id        CHAR(36) PRIMARY KEY,
		tahun     VARCHAR(16) NOT NULL,
		semester  VARCHAR(8)  NOT NULL,
		is_active TINYINT(1)  NOT NULL DEFAULT 0
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables. It is safe to run on every
// startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
