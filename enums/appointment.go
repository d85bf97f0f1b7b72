package enums

// EventAppointmentBooked names the message published after a booking.
const EventAppointmentBooked = "appointment.booked"
