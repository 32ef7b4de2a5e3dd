package msgs

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"golang.org/x/text/language"
)

const arenaPrefix = "AR01"

var registered sync.Once
var ffe = func(key, translation string, statusHint ...int) i18n.ErrorMessageKey {
	registered.Do(func() {
		i18n.RegisterPrefix(arenaPrefix, "Blade Arena")
	})
	if !strings.HasPrefix(key, arenaPrefix) {
		panic(fmt.Errorf("must have prefix '%s': %s", arenaPrefix, key))
	}
	return i18n.FFE(language.AmericanEnglish, key, translation, statusHint...)
}

var (
	// Authorization AR0100XX
	MsgUnauthorized        = ffe("AR010000", "Caller '%s' is not authorized to act for '%s'", http.StatusForbidden)
	MsgMissingBearerToken  = ffe("AR010001", "Missing bearer token", http.StatusForbidden)
	MsgInvalidBearerToken  = ffe("AR010002", "Invalid bearer token: %s", http.StatusForbidden)
	MsgTokenMissingSubject = ffe("AR010003", "Bearer token has no subject", http.StatusForbidden)

	// Invalid input AR0101XX
	MsgInvalidAddress    = ffe("AR010100", "Address must not be empty", http.StatusBadRequest)
	MsgInvalidChoice     = ffe("AR010101", "Invalid choice %d: must be 1 (attack) or 2 (defend)", http.StatusBadRequest)
	MsgInvalidClass      = ffe("AR010102", "Invalid equipment class %d: must be 1, 2 or 3", http.StatusBadRequest)
	MsgInvalidBattleName = ffe("AR010103", "Invalid battle name %q: must be 1-%d characters of [A-Za-z0-9_]", http.StatusBadRequest)
	MsgInvalidRequest    = ffe("AR010104", "Invalid request body: %s", http.StatusBadRequest)

	// State conflicts AR0102XX
	MsgPlayerAlreadyRegistered = ffe("AR010200", "Player '%s' is already registered", http.StatusConflict)
	MsgPlayerNotRegistered     = ffe("AR010201", "Player '%s' is not registered", http.StatusConflict)
	MsgPlayerAlreadyInBattle   = ffe("AR010202", "Player '%s' is already in a battle", http.StatusConflict)
	MsgPlayerInBattle          = ffe("AR010203", "Player '%s' cannot change equipment while in a battle", http.StatusConflict)
	MsgAlreadyEquipped         = ffe("AR010204", "Player '%s' already has a blade equipped", http.StatusConflict)
	MsgNotEquipped             = ffe("AR010205", "Player '%s' has no blade equipped", http.StatusConflict)
	MsgBattleAlreadyExists     = ffe("AR010206", "Battle '%s' already exists", http.StatusConflict)
	MsgBattleAlreadyStarted    = ffe("AR010207", "Battle '%s' already started", http.StatusConflict)
	MsgBattleNotStarted        = ffe("AR010208", "Battle '%s' has not started", http.StatusConflict)
	MsgNotAParticipant         = ffe("AR010209", "Player '%s' is not in battle '%s'", http.StatusConflict)
	MsgMoveAlreadySubmitted    = ffe("AR010210", "Player '%s' already made a move in round %d of battle '%s'", http.StatusConflict)
	MsgCannotJoinOwnBattle     = ffe("AR010211", "Player '%s' created battle '%s' and cannot join it", http.StatusConflict)
	MsgNotBattleCreator        = ffe("AR010212", "Only the creator of battle '%s' can challenge the bot", http.StatusConflict)

	// Not found AR0103XX
	MsgPlayerNotFound    = ffe("AR010300", "Player '%s' not found", http.StatusNotFound)
	MsgBattleNotFound    = ffe("AR010301", "Battle '%s' not found", http.StatusNotFound)
	MsgEquipmentNotFound = ffe("AR010302", "No metadata for equipment class %d", http.StatusNotFound)

	// State store and codec AR0104XX
	MsgStateReadFailed      = ffe("AR010400", "Failed to read state key '%s'")
	MsgStateWriteFailed     = ffe("AR010401", "Failed to write state key '%s'")
	MsgCodecVersion         = ffe("AR010402", "Unsupported record version %d")
	MsgCodecCorrupt         = ffe("AR010403", "Corrupt record: %s")
	MsgPanicInTransaction   = ffe("AR010404", "Panic within state transaction: %v")
	MsgStoreInitFailed      = ffe("AR010405", "Failed to initialize state store")
	MsgStoreMissingDSN      = ffe("AR010406", "Database DSN must be set")
	MsgStoreMigrationFailed = ffe("AR010407", "Failed to migrate state store schema")
	MsgInvalidCounter       = ffe("AR010408", "Invalid counter value '%s' at key '%s'")

	// Configuration AR0105XX
	MsgConfigFileMissing    = ffe("AR010500", "Config file not found at location: %s")
	MsgConfigFileReadError  = ffe("AR010501", "Failed to read config file %s with error: %s")
	MsgConfigFileParseError = ffe("AR010502", "Failed to parse config file: %s")
	MsgConfigEnvParseError  = ffe("AR010503", "Failed to apply environment overrides: %s")
	MsgMissingJWTSecret     = ffe("AR010504", "auth.jwtSecret must be set")
	MsgHTTPServerStart      = ffe("AR010505", "Failed to listen on %s")

	// Client AR0106XX
	MsgClientRequestFailed = ffe("AR010600", "Request to %s failed with status %d: %s")
	MsgClientInvalidURL    = ffe("AR010601", "Invalid API URL '%s'")
)
