package dto

// MigrationStatusResponse estado de la migración local → remoto.
type MigrationStatusResponse struct {
	NeedsMigration bool `json:"needs_migration"`
	LocalRecords   int  `json:"local_records"`
	RemoteRecords  int  `json:"remote_records"`
	HasBackup      bool `json:"has_backup"`
}

// MigrationResultResponse resultado de un intento de migración.
type MigrationResultResponse struct {
	Success       bool     `json:"success"`
	MigratedCount int      `json:"migrated_count"`
	Errors        []string `json:"errors"`
}
