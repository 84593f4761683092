package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/smarttax/backend/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if logger.L != nil {
		logger.L.Info("Checking database migrations", "databasePath", databasePath)
	} else {
		stdlog.Println("Checking database migrations for:", databasePath)
	}
	migrateWizardSessionTable()

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS wizard_sessions (
		id TEXT PRIMARY KEY,
		transaction_json TEXT NOT NULL DEFAULT '{}',
		current_step TEXT NOT NULL DEFAULT 'start',
		completed_steps TEXT NOT NULL DEFAULT '[]',
		result_json TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.")
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
}

func migrateWizardSessionTable() {
	var tableName string
	err := DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='wizard_sessions'").Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			if logger.L != nil {
				logger.L.Info("'wizard_sessions' table does not exist, no migration needed as table will be created.")
			} else {
				stdlog.Println("'wizard_sessions' table does not exist, no migration needed as table will be created.")
			}
			return
		}
		if logger.L != nil {
			logger.L.Error("Error checking for 'wizard_sessions' table", "error", err)
		} else {
			stdlog.Printf("Error checking for 'wizard_sessions' table: %v", err)
		}
		return
	}

	rows, err := DB.Query("PRAGMA table_info(wizard_sessions)")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error querying table schema for 'wizard_sessions'", "error", err)
		} else {
			stdlog.Printf("Error querying table schema for 'wizard_sessions': %v", err)
		}
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}

		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			if logger.L != nil {
				logger.L.Error("Error scanning column info for 'wizard_sessions'", "error", err)
			} else {
				stdlog.Printf("Error scanning column info for 'wizard_sessions': %v", err)
			}
			return
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		if logger.L != nil {
			logger.L.Error("Error iterating over column info for 'wizard_sessions'", "error", err)
		} else {
			stdlog.Printf("Error iterating over column info for 'wizard_sessions': %v", err)
		}
		return
	}

	if _, ok := columnExists["result_json"]; !ok {
		_, err := DB.Exec("ALTER TABLE wizard_sessions ADD COLUMN result_json TEXT")
		if err != nil {
			logger.L.Error("Error adding 'result_json' column to 'wizard_sessions' table", "error", err)
		} else {
			logger.L.Info("Added 'result_json' column to 'wizard_sessions' table")
		}
	}

	if _, ok := columnExists["completed_steps"]; !ok {
		_, err := DB.Exec("ALTER TABLE wizard_sessions ADD COLUMN completed_steps TEXT NOT NULL DEFAULT '[]'")
		if err != nil {
			logger.L.Error("Error adding 'completed_steps' column to 'wizard_sessions' table", "error", err)
		} else {
			logger.L.Info("Added 'completed_steps' column to 'wizard_sessions' table")
		}
	}
}
