package handler

import (
	"net/http"
	"strings"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TimezoneHeader carries the caller's local zone as an IANA name or UTC offset
const TimezoneHeader = "X-Timezone"

// locationResolver picks the zone that defines "today" for a request
type locationResolver struct {
	userService service.UserService
	logger      *zap.Logger
}

// resolve returns the X-Timezone zone, then the profile zone, then UTC.
// A malformed header is a validation error.
func (l *locationResolver) resolve(r *http.Request, userID uuid.UUID) (*time.Location, error) {
	if header := strings.TrimSpace(r.Header.Get(TimezoneHeader)); header != "" {
		return entity.ParseLocation(header)
	}

	if l.userService == nil || userID == uuid.Nil {
		return time.UTC, nil
	}

	user, err := l.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		l.logger.Debug("falling back to UTC", zap.String("user_id", userID.String()), zap.Error(err))
		return time.UTC, nil
	}

	return user.Location(), nil
}
