// Package all registers every built-in history backend with the ledger
// factory. The CLI blank-imports this package; callers that want a specific
// backend can import it directly instead.
package all

import (
	_ "studycompiler/internal/history/postgres"
	_ "studycompiler/internal/history/sqlite"
)
