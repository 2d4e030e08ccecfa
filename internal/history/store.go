package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant     = "logger not configured"
	filePathNotConfiguredMessageConstant   = "history file path not configured"
	capacityNotPositiveMessageConstant     = "history capacity must be positive"
	temporaryFilePatternTemplateConstant   = "%s.*.tmp"
	persistIndentConstant                  = "  "
	historyLoadFailedLogMessageConstant    = "history file unreadable"
	historyDecodeFailedLogMessageConstant  = "history file malformed"
	historyPersistFailedLogMessageConstant = "history persist failed"
	logFieldHistoryFileConstant            = "history_file"
)

// ErrLoggerNotConfigured indicates the store was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrFilePathNotConfigured indicates the store was constructed without a backing file path.
var ErrFilePathNotConfigured = errors.New(filePathNotConfiguredMessageConstant)

// ErrCapacityNotPositive indicates the store was constructed with a non-positive capacity.
var ErrCapacityNotPositive = errors.New(capacityNotPositiveMessageConstant)

// Store keeps a bounded most-recent-first list of records persisted as a JSON
// array. Load and persist failures are logged and swallowed; the store is a
// convenience, not a system of record.
type Store[R Record[R]] struct {
	logger     *zap.Logger
	filePath   string
	capacity   int
	timeSource func() time.Time
	stateMutex sync.Mutex
	records    []R
}

// NewStore reads the file at filePath and returns a store bounded to capacity
// entries. A missing file yields an empty store; a malformed file is logged
// and also yields an empty store.
func NewStore[R Record[R]](logger *zap.Logger, filePath string, capacity int) (*Store[R], error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	trimmedFilePath := strings.TrimSpace(filePath)
	if len(trimmedFilePath) == 0 {
		return nil, ErrFilePathNotConfigured
	}
	if capacity <= 0 {
		return nil, ErrCapacityNotPositive
	}

	store := &Store[R]{
		logger:     logger,
		filePath:   trimmedFilePath,
		capacity:   capacity,
		timeSource: time.Now,
	}
	store.records = store.loadRecords()

	return store, nil
}

// SetTimeSource overrides the clock used to stamp touched records.
func (store *Store[R]) SetTimeSource(timeSource func() time.Time) {
	if timeSource == nil {
		store.timeSource = time.Now
		return
	}
	store.timeSource = timeSource
}

// Touch promotes the record matching the candidate's key to the front,
// refreshing its metadata, and persists the updated list best-effort. When no
// record matches, the candidate itself is stamped and inserted at the front.
// The list is trimmed from the tail whenever it exceeds the capacity.
func (store *Store[R]) Touch(candidate R) R {
	store.stateMutex.Lock()
	defer store.stateMutex.Unlock()

	recordKey := candidate.RecordKey()
	for recordIndex, existingRecord := range store.records {
		if existingRecord.RecordKey() == recordKey {
			candidate = existingRecord
			store.records = append(store.records[:recordIndex], store.records[recordIndex+1:]...)
			break
		}
	}

	touchedRecord := candidate.Touched(store.timeSource())
	store.records = append([]R{touchedRecord}, store.records...)
	if len(store.records) > store.capacity {
		store.records = store.records[:store.capacity]
	}

	store.persistRecords()

	return touchedRecord
}

// Records returns a copy of every stored record, most recent first.
func (store *Store[R]) Records() []R {
	store.stateMutex.Lock()
	defer store.stateMutex.Unlock()

	return append([]R(nil), store.records...)
}

// RecentRecords returns up to limit records, most recent first.
func (store *Store[R]) RecentRecords(limit int) []R {
	store.stateMutex.Lock()
	defer store.stateMutex.Unlock()

	if limit <= 0 || len(store.records) == 0 {
		return nil
	}
	if limit > len(store.records) {
		limit = len(store.records)
	}

	return append([]R(nil), store.records[:limit]...)
}

func (store *Store[R]) loadRecords() []R {
	fileContents, readError := os.ReadFile(store.filePath)
	if readError != nil {
		if !errors.Is(readError, fs.ErrNotExist) {
			store.logger.Warn(historyLoadFailedLogMessageConstant,
				zap.String(logFieldHistoryFileConstant, store.filePath),
				zap.Error(readError))
		}
		return nil
	}

	var decodedRecords []R
	if decodeError := json.Unmarshal(fileContents, &decodedRecords); decodeError != nil {
		store.logger.Warn(historyDecodeFailedLogMessageConstant,
			zap.String(logFieldHistoryFileConstant, store.filePath),
			zap.Error(decodeError))
		return nil
	}

	if len(decodedRecords) > store.capacity {
		decodedRecords = decodedRecords[:store.capacity]
	}

	return decodedRecords
}

// persistRecords replaces the backing file atomically through a temp file and
// rename so a crash mid-write never corrupts the previous valid contents.
func (store *Store[R]) persistRecords() {
	encodedRecords, encodeError := json.MarshalIndent(store.records, "", persistIndentConstant)
	if encodeError != nil {
		store.logPersistFailure(encodeError)
		return
	}

	temporaryFilePattern := fmt.Sprintf(temporaryFilePatternTemplateConstant, filepath.Base(store.filePath))
	temporaryFile, temporaryFileError := os.CreateTemp(filepath.Dir(store.filePath), temporaryFilePattern)
	if temporaryFileError != nil {
		store.logPersistFailure(temporaryFileError)
		return
	}
	temporaryPath := temporaryFile.Name()

	_, writeError := temporaryFile.Write(encodedRecords)
	if closeError := temporaryFile.Close(); writeError == nil {
		writeError = closeError
	}
	if writeError != nil {
		store.logPersistFailure(writeError)
		_ = os.Remove(temporaryPath)
		return
	}

	if renameError := os.Rename(temporaryPath, store.filePath); renameError != nil {
		store.logPersistFailure(renameError)
		_ = os.Remove(temporaryPath)
	}
}

func (store *Store[R]) logPersistFailure(failure error) {
	store.logger.Warn(historyPersistFailedLogMessageConstant,
		zap.String(logFieldHistoryFileConstant, store.filePath),
		zap.Error(failure))
}
