package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskCallBookingReminder = "bookings.reminder"

const TaskInvoiceOverdueSweep = "invoices.overdue_sweep"

type CallBookingReminderPayload struct {
	BookingID string `json:"bookingId"`
}

func NewCallBookingReminderTask(payload CallBookingReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCallBookingReminder, data), nil
}

func ParseCallBookingReminderPayload(task *asynq.Task) (CallBookingReminderPayload, error) {
	var payload CallBookingReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return CallBookingReminderPayload{}, err
	}
	return payload, nil
}

// NewInvoiceOverdueSweepTask builds the periodic sweep task. It carries no
// payload, the handler scans every sent invoice past its due date.
func NewInvoiceOverdueSweepTask() *asynq.Task {
	return asynq.NewTask(TaskInvoiceOverdueSweep, nil)
}
