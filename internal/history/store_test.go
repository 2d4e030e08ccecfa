package history_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/okanin/summon/internal/history"
)

const (
	testHistoryFileNameConstant         = "history.json"
	testStoreCapacityConstant           = 3
	boundedStoreCapacityConstant        = 100
	boundedStoreTouchCountConstant      = 101
	boundedStoreTouchTemplateConstant   = "command-%03d"
	repeatedAppIdentifierConstant       = "org.mozilla.firefox"
	repeatedAppTouchCountConstant       = 5
	malformedHistoryPayloadConstant     = "{not json"
	wrongShapeHistoryPayloadConstant    = `{"commands": []}`
	firstCommandTextConstant            = "make build"
	secondCommandTextConstant           = "make test"
	thirdCommandTextConstant            = "make lint"
	persistFailureLogMessageConstant    = "history persist failed"
	missingFileCaseNameConstant         = "missing_file"
	malformedFileCaseNameConstant       = "malformed_file"
	wrongShapeFileCaseNameConstant      = "wrong_shape_file"
	nilLoggerCaseNameConstant           = "nil_logger"
	blankFilePathCaseNameConstant       = "blank_file_path"
	nonPositiveCapacityCaseNameConstant = "non_positive_capacity"
	recordFieldLastUsedConstant         = "last_used"
	recordFieldIdentifierConstant       = "id"
	recordFieldCountConstant            = "count"
	oversizedRecordElementConstant      = `{"text":"command-%d","last_used":"2025-03-09T08:30:00Z"}`
	oldestOversizedRecordTextConstant   = "command-0"
	expectedSingleRecordLengthConstant  = 1
	expectedDeduplicatedLengthConstant  = 2
	oversizedPersistedRecordsConstant   = 5
	directoryOnlyHistoryEntriesConstant = 1
	recentRecordsPartialLimitConstant   = 2
	recentRecordsOversizedLimitConstant = 10
)

var testReferenceTimeValue = time.Date(2025, time.March, 9, 8, 30, 0, 0, time.UTC)

func advancingTimeSource(startTime time.Time) func() time.Time {
	currentTime := startTime
	return func() time.Time {
		currentTime = currentTime.Add(time.Second)
		return currentTime
	}
}

func TestNewStoreValidation(t *testing.T) {
	validFilePath := filepath.Join(t.TempDir(), testHistoryFileNameConstant)

	testCases := []struct {
		name          string
		logger        *zap.Logger
		filePath      string
		capacity      int
		expectedError error
	}{
		{
			name:          nilLoggerCaseNameConstant,
			logger:        nil,
			filePath:      validFilePath,
			capacity:      testStoreCapacityConstant,
			expectedError: history.ErrLoggerNotConfigured,
		},
		{
			name:          blankFilePathCaseNameConstant,
			logger:        zap.NewNop(),
			filePath:      "   ",
			capacity:      testStoreCapacityConstant,
			expectedError: history.ErrFilePathNotConfigured,
		},
		{
			name:          nonPositiveCapacityCaseNameConstant,
			logger:        zap.NewNop(),
			filePath:      validFilePath,
			capacity:      0,
			expectedError: history.ErrCapacityNotPositive,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(testInstance *testing.T) {
			store, creationError := history.NewStore[history.CommandRecord](testCase.logger, testCase.filePath, testCase.capacity)

			require.Nil(testInstance, store)
			require.ErrorIs(testInstance, creationError, testCase.expectedError)
		})
	}
}

func TestStoreTouchDeduplicatesAndPromotes(t *testing.T) {
	historyFilePath := filepath.Join(t.TempDir(), testHistoryFileNameConstant)
	store, creationError := history.NewStore[history.CommandRecord](zap.NewNop(), historyFilePath, testStoreCapacityConstant)
	require.NoError(t, creationError)
	store.SetTimeSource(advancingTimeSource(testReferenceTimeValue))

	store.Touch(history.NewCommandRecord(firstCommandTextConstant))
	store.Touch(history.NewCommandRecord(secondCommandTextConstant))
	promotedRecord := store.Touch(history.NewCommandRecord(firstCommandTextConstant))

	storedRecords := store.Records()
	require.Len(t, storedRecords, expectedDeduplicatedLengthConstant)
	require.Equal(t, firstCommandTextConstant, storedRecords[0].Text)
	require.Equal(t, secondCommandTextConstant, storedRecords[1].Text)
	require.Equal(t, promotedRecord, storedRecords[0])
	require.True(t, storedRecords[0].LastUsed.After(storedRecords[1].LastUsed))
}

func TestStoreTouchEnforcesCapacityBound(t *testing.T) {
	historyFilePath := filepath.Join(t.TempDir(), testHistoryFileNameConstant)
	store, creationError := history.NewStore[history.CommandRecord](zap.NewNop(), historyFilePath, boundedStoreCapacityConstant)
	require.NoError(t, creationError)
	store.SetTimeSource(advancingTimeSource(testReferenceTimeValue))

	for touchIndex := 0; touchIndex < boundedStoreTouchCountConstant; touchIndex++ {
		store.Touch(history.NewCommandRecord(fmt.Sprintf(boundedStoreTouchTemplateConstant, touchIndex)))
		require.LessOrEqual(t, len(store.Records()), boundedStoreCapacityConstant)
	}

	storedRecords := store.Records()
	require.Len(t, storedRecords, boundedStoreCapacityConstant)
	require.Equal(t, fmt.Sprintf(boundedStoreTouchTemplateConstant, boundedStoreTouchCountConstant-1), storedRecords[0].Text)
	for _, storedRecord := range storedRecords {
		require.NotEqual(t, fmt.Sprintf(boundedStoreTouchTemplateConstant, 0), storedRecord.Text)
	}
}

func TestStoreAppUsageCountsLaunches(t *testing.T) {
	historyFilePath := filepath.Join(t.TempDir(), testHistoryFileNameConstant)
	store, creationError := history.NewStore[history.AppUsageRecord](zap.NewNop(), historyFilePath, testStoreCapacityConstant)
	require.NoError(t, creationError)
	store.SetTimeSource(advancingTimeSource(testReferenceTimeValue))

	for touchIndex := 0; touchIndex < repeatedAppTouchCountConstant; touchIndex++ {
		store.Touch(history.NewAppUsageRecord(repeatedAppIdentifierConstant))
	}

	storedRecords := store.Records()
	require.Len(t, storedRecords, expectedSingleRecordLengthConstant)
	require.Equal(t, repeatedAppIdentifierConstant, storedRecords[0].Identifier)
	require.Equal(t, repeatedAppTouchCountConstant, storedRecords[0].Count)
}

func TestStorePersistAndReloadRoundTrip(t *testing.T) {
	historyFilePath := filepath.Join(t.TempDir(), testHistoryFileNameConstant)
	store, creationError := history.NewStore[history.CommandRecord](zap.NewNop(), historyFilePath, testStoreCapacityConstant)
	require.NoError(t, creationError)
	store.SetTimeSource(advancingTimeSource(testReferenceTimeValue))

	store.Touch(history.NewCommandRecord(firstCommandTextConstant))
	store.Touch(history.NewCommandRecord(secondCommandTextConstant))

	reloadedStore, reloadError := history.NewStore[history.CommandRecord](zap.NewNop(), historyFilePath, testStoreCapacityConstant)
	require.NoError(t, reloadError)
	require.Equal(t, store.Records(), reloadedStore.Records())
}

func TestStorePersistedAppRecordFields(t *testing.T) {
	historyFilePath := filepath.Join(t.TempDir(), testHistoryFileNameConstant)
	store, creationError := history.NewStore[history.AppUsageRecord](zap.NewNop(), historyFilePath, testStoreCapacityConstant)
	require.NoError(t, creationError)
	store.SetTimeSource(advancingTimeSource(testReferenceTimeValue))

	store.Touch(history.NewAppUsageRecord(repeatedAppIdentifierConstant))

	fileContents, readError := os.ReadFile(historyFilePath)
	require.NoError(t, readError)

	var persistedRecords []map[string]any
	require.NoError(t, json.Unmarshal(fileContents, &persistedRecords))
	require.Len(t, persistedRecords, expectedSingleRecordLengthConstant)
	require.Equal(t, repeatedAppIdentifierConstant, persistedRecords[0][recordFieldIdentifierConstant])
	require.Contains(t, persistedRecords[0], recordFieldLastUsedConstant)
	require.Equal(t, float64(expectedSingleRecordLengthConstant), persistedRecords[0][recordFieldCountConstant])
}

func TestStoreLoadToleratesMissingAndMalformedFiles(t *testing.T) {
	testCases := []struct {
		name              string
		fileContents      string
		writeFile         bool
		expectedWarnCount int
	}{
		{
			name:              missingFileCaseNameConstant,
			writeFile:         false,
			expectedWarnCount: 0,
		},
		{
			name:              malformedFileCaseNameConstant,
			fileContents:      malformedHistoryPayloadConstant,
			writeFile:         true,
			expectedWarnCount: 1,
		},
		{
			name:              wrongShapeFileCaseNameConstant,
			fileContents:      wrongShapeHistoryPayloadConstant,
			writeFile:         true,
			expectedWarnCount: 1,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(testInstance *testing.T) {
			historyFilePath := filepath.Join(testInstance.TempDir(), testHistoryFileNameConstant)
			if testCase.writeFile {
				require.NoError(testInstance, os.WriteFile(historyFilePath, []byte(testCase.fileContents), 0o600))
			}

			observedCore, observedLogs := observer.New(zapcore.WarnLevel)
			store, creationError := history.NewStore[history.CommandRecord](zap.New(observedCore), historyFilePath, testStoreCapacityConstant)

			require.NoError(testInstance, creationError)
			require.Empty(testInstance, store.Records())
			require.Equal(testInstance, testCase.expectedWarnCount, observedLogs.Len())
		})
	}
}

func TestStoreLoadTrimsBeyondCapacity(t *testing.T) {
	historyFilePath := filepath.Join(t.TempDir(), testHistoryFileNameConstant)

	persistedElements := make([]string, 0, oversizedPersistedRecordsConstant)
	for recordIndex := 0; recordIndex < oversizedPersistedRecordsConstant; recordIndex++ {
		persistedElements = append(persistedElements, fmt.Sprintf(oversizedRecordElementConstant, recordIndex))
	}
	persistedPayload := "[" + strings.Join(persistedElements, ",") + "]"
	require.NoError(t, os.WriteFile(historyFilePath, []byte(persistedPayload), 0o600))

	store, creationError := history.NewStore[history.CommandRecord](zap.NewNop(), historyFilePath, testStoreCapacityConstant)
	require.NoError(t, creationError)

	storedRecords := store.Records()
	require.Len(t, storedRecords, testStoreCapacityConstant)
	require.Equal(t, oldestOversizedRecordTextConstant, storedRecords[0].Text)
}

func TestStorePersistFailureKeepsMemoryState(t *testing.T) {
	historyFilePath := filepath.Join(t.TempDir(), "missing", testHistoryFileNameConstant)

	observedCore, observedLogs := observer.New(zapcore.WarnLevel)
	store, creationError := history.NewStore[history.CommandRecord](zap.New(observedCore), historyFilePath, testStoreCapacityConstant)
	require.NoError(t, creationError)

	touchedRecord := store.Touch(history.NewCommandRecord(firstCommandTextConstant))

	require.Equal(t, firstCommandTextConstant, touchedRecord.Text)
	require.Len(t, store.Records(), expectedSingleRecordLengthConstant)
	require.Equal(t, 1, observedLogs.FilterMessage(persistFailureLogMessageConstant).Len())
}

func TestStorePersistLeavesNoTemporaryFiles(t *testing.T) {
	historyDirectory := t.TempDir()
	historyFilePath := filepath.Join(historyDirectory, testHistoryFileNameConstant)
	store, creationError := history.NewStore[history.CommandRecord](zap.NewNop(), historyFilePath, testStoreCapacityConstant)
	require.NoError(t, creationError)

	store.Touch(history.NewCommandRecord(firstCommandTextConstant))
	store.Touch(history.NewCommandRecord(secondCommandTextConstant))
	store.Touch(history.NewCommandRecord(thirdCommandTextConstant))

	directoryEntries, readError := os.ReadDir(historyDirectory)
	require.NoError(t, readError)
	require.Len(t, directoryEntries, directoryOnlyHistoryEntriesConstant)
	require.Equal(t, testHistoryFileNameConstant, directoryEntries[0].Name())
}

func TestStoreRecentRecordsLimits(t *testing.T) {
	historyFilePath := filepath.Join(t.TempDir(), testHistoryFileNameConstant)
	store, creationError := history.NewStore[history.CommandRecord](zap.NewNop(), historyFilePath, testStoreCapacityConstant)
	require.NoError(t, creationError)
	store.SetTimeSource(advancingTimeSource(testReferenceTimeValue))

	store.Touch(history.NewCommandRecord(firstCommandTextConstant))
	store.Touch(history.NewCommandRecord(secondCommandTextConstant))
	store.Touch(history.NewCommandRecord(thirdCommandTextConstant))

	partialRecords := store.RecentRecords(recentRecordsPartialLimitConstant)
	require.Len(t, partialRecords, recentRecordsPartialLimitConstant)
	require.Equal(t, thirdCommandTextConstant, partialRecords[0].Text)

	require.Nil(t, store.RecentRecords(0))
	require.Len(t, store.RecentRecords(recentRecordsOversizedLimitConstant), testStoreCapacityConstant)
}
