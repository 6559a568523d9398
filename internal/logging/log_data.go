package logging

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
)

type logDataKey struct{}

// LogData accumulates fields and timings for one unit of work and emits them
// as a single log entry.
type LogData struct {
	mutex     *sync.Mutex
	timeItems map[string]int64
	dataItems map[string]interface{}
	logger    *logrus.Logger
}

func NewLogData(logger *logrus.Logger) *LogData {
	return &LogData{
		mutex:     &sync.Mutex{},
		timeItems: make(map[string]int64),
		dataItems: make(map[string]interface{}),
		logger:    logger,
	}
}

// NewRequestLogData returns a LogData tagged with a fresh requestID.
func NewRequestLogData(logger *logrus.Logger) *LogData {
	logData := NewLogData(logger)
	if id, err := uuid.NewV4(); err == nil {
		logData.AddData("requestID", id.String())
	}
	return logData
}

// WithLogData stores logData in the context.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, logDataKey{}, logData)
}

// GetLogData returns the LogData stored in ctx, or nil.
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(logDataKey{}).(*LogData)
	return logData
}

func (l *LogData) AddTiming(entryName string) func() {
	startTime := time.Now()

	return func() {
		timeSince := time.Since(startTime).Milliseconds()
		l.mutex.Lock()
		defer l.mutex.Unlock()
		l.timeItems[entryName] = timeSince
	}
}

func (l *LogData) AddData(key string, value interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.dataItems[key] = value
}

func (l *LogData) Log() *logrus.Entry {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	entry := logrus.NewEntry(l.logger)

	for key, value := range l.dataItems {
		entry = entry.WithField(key, value)
	}

	for key, value := range l.timeItems {
		entry = entry.WithField(key, value)
	}

	return entry
}

// StartTiming is AddTiming on the LogData carried by ctx; it is a no-op when
// there is none.
func StartTiming(ctx context.Context, entryName string) func() {
	if logData := GetLogData(ctx); logData != nil {
		return logData.AddTiming(entryName)
	}
	return func() {}
}

// AddData is AddData on the LogData carried by ctx, if any.
func AddData(ctx context.Context, key string, value interface{}) {
	if logData := GetLogData(ctx); logData != nil {
		logData.AddData(key, value)
	}
}
