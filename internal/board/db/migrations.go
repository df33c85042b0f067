package db

import "embed"

// Migrations はスキーマのマイグレーションファイル群。
// pkg/migration.Run に "migrations" ディレクトリとして渡す。
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir はMigrations内のマイグレーションファイルのディレクトリ名。
const MigrationsDir = "migrations"
