package errprocess

import (
	"fmt"

	"realtime_chat_service/pkg/logger"

	"go.uber.org/zap"
)

// Set log err info and wrap it with kind so callers can errors.Is(err, kind)
func Set(kind error, errMsg string, fields ...zap.Field) error {
	logger.Log.Error(errMsg, append(fields, zap.String("kind", kind.Error()))...)
	return fmt.Errorf("%w: %s", kind, errMsg)
}

// Warn same as Set but logged at warn level, for client mistakes
func Warn(kind error, errMsg string, fields ...zap.Field) error {
	logger.Log.Warn(errMsg, append(fields, zap.String("kind", kind.Error()))...)
	return fmt.Errorf("%w: %s", kind, errMsg)
}
