package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/octabyte/clinic-portal/enums"
	"github.com/octabyte/clinic-portal/models"
	"github.com/octabyte/clinic-portal/utils"
)

// BookingEvent is the message published after the clinic API accepted a
// booking.
type BookingEvent struct {
	Event           string    `json:"event"`
	DoctorID        int64     `json:"doctorId"`
	PatientID       int64     `json:"patientId"`
	AppointmentTime string    `json:"appointmentTime"`
	OccurredAt      time.Time `json:"occurredAt"`
}

type BookingNotifier struct {
	publisher Publisher
	now       func() time.Time
}

func NewBookingNotifier(p Publisher) *BookingNotifier {
	if p == nil {
		p = NopPublisher{}
	}
	return &BookingNotifier{publisher: p, now: time.Now}
}

// NotifyBooked publishes an appointment.booked event for appointment.
func (n *BookingNotifier) NotifyBooked(ctx context.Context, appointment models.Appointment) error {
	body, err := utils.StructToBytes(BookingEvent{
		Event:           enums.EventAppointmentBooked,
		DoctorID:        appointment.DoctorID,
		PatientID:       appointment.PatientID,
		AppointmentTime: appointment.AppointmentTime,
		OccurredAt:      n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode booking event: %w", err)
	}

	if err := n.publisher.Publish(ctx, body); err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}
	return nil
}

func (n *BookingNotifier) Close() error {
	return n.publisher.Close()
}
