package roster

import (
	"fmt"
	"time"

	"github.com/rakaarfi/roster-system-be/internal/models"
)

const SenderHR = "HR"

func span(s models.Shift) string {
	if s.ShiftEndTime == "" {
		return FormatHM(s.ShiftStartTime)
	}
	return FormatHM(s.ShiftStartTime) + "-" + FormatHM(s.ShiftEndTime)
}

func AssignedMessage(s models.Shift, now time.Time) models.Message {
	return models.Message{
		Text:   fmt.Sprintf("You have a new %s shift on %s (%s).", s.ShiftRole, s.ShiftDate, span(s)),
		From:   SenderHR,
		SentAt: now,
	}
}

func EditSubmittedMessage(s models.Shift, staffName string, now time.Time) models.Message {
	return models.Message{
		Text:   fmt.Sprintf("Your time change for %s (%s) was submitted and is awaiting approval.", s.ShiftDate, s.ShiftRole),
		From:   staffName,
		SentAt: now,
	}
}

func ApprovedMessage(s models.Shift, now time.Time) models.Message {
	return models.Message{
		Text:   fmt.Sprintf("Your time change for %s (%s) has been approved.", s.ShiftDate, s.ShiftRole),
		From:   SenderHR,
		SentAt: now,
	}
}

// RejectedMessage quotes the live (unchanged) times of the shift.
func RejectedMessage(s models.Shift, now time.Time) models.Message {
	return models.Message{
		Text:   fmt.Sprintf("Your time change for %s (%s) was rejected. Your assigned time remains %s.", s.ShiftDate, s.ShiftRole, span(s)),
		From:   SenderHR,
		SentAt: now,
	}
}

func CancelledMessage(s models.Shift, now time.Time) models.Message {
	return models.Message{
		Text:   fmt.Sprintf("Your %s shift on %s has been cancelled.", s.ShiftRole, s.ShiftDate),
		From:   SenderHR,
		SentAt: now,
	}
}

func RemovedMessage(s models.Shift, now time.Time) models.Message {
	return models.Message{
		Text:   fmt.Sprintf("Your %s shift on %s has been removed from the roster.", s.ShiftRole, s.ShiftDate),
		From:   SenderHR,
		SentAt: now,
	}
}
