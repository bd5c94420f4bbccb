package notify

import "fmt"

func AppointmentBooked(workerUserID uint, service, date, slot string, appointmentID uint) Message {
	return Message{
		UserID: workerUserID,
		Type:   TypeAppointmentConfirmed,
		Title:  "New appointment",
		Body:   fmt.Sprintf("New appointment for %s on %s at %s", service, date, slot),
		Link:   fmt.Sprintf("/dashboard/worker/appointments?id=%d", appointmentID),
	}
}

func AppointmentConfirmed(clientUserID uint, service, date, slot string, appointmentID uint) Message {
	return Message{
		UserID: clientUserID,
		Type:   TypeAppointmentConfirmed,
		Title:  "Appointment confirmed",
		Body:   fmt.Sprintf("Your %s appointment on %s at %s is confirmed", service, date, slot),
		Link:   fmt.Sprintf("/dashboard/client/appointments?id=%d", appointmentID),
	}
}

func AppointmentCancelled(userID uint, date, slot, reason string, appointmentID uint) Message {
	body := fmt.Sprintf("The appointment on %s at %s was cancelled.", date, slot)
	if reason != "" {
		body += " Reason: " + reason
	}
	return Message{
		UserID: userID,
		Type:   TypeAppointmentCancelled,
		Title:  "Appointment cancelled",
		Body:   body,
		Link:   fmt.Sprintf("/dashboard?cancelledAppointment=%d", appointmentID),
	}
}

func AppointmentRescheduled(userID uint, date, slot string, appointmentID uint) Message {
	return Message{
		UserID: userID,
		Type:   TypeAppointmentRescheduled,
		Title:  "Appointment rescheduled",
		Body:   fmt.Sprintf("The appointment moved to %s at %s", date, slot),
		Link:   fmt.Sprintf("/dashboard/appointments?id=%d", appointmentID),
	}
}

func LoyaltyReward(clientUserID uint, points int) Message {
	return Message{
		UserID: clientUserID,
		Type:   TypeLoyaltyReward,
		Title:  "Loyalty points",
		Body:   fmt.Sprintf("You earned %d loyalty points!", points),
	}
}

func CommissionRequested(userID uint, workerName, period string, commissionID uint) Message {
	return Message{
		UserID: userID,
		Type:   TypeSystem,
		Title:  "Payment request",
		Body:   fmt.Sprintf("Commission for %s requested for %s", workerName, period),
		Link:   fmt.Sprintf("/dashboard/commissions?id=%d", commissionID),
	}
}

func CommissionPaid(workerUserID uint, period string, amount int64, commissionID uint) Message {
	return Message{
		UserID: workerUserID,
		Type:   TypePaymentReceived,
		Title:  "Payment approved",
		Body:   fmt.Sprintf("Your commission for %s has been paid (%d).", period, amount),
		Link:   fmt.Sprintf("/dashboard/worker?commissionId=%d", commissionID),
	}
}

func CommissionSettled(adminUserID uint, workerName, period string, employerShare int64) Message {
	return Message{
		UserID: adminUserID,
		Type:   TypeSystem,
		Title:  "Commission paid",
		Body:   fmt.Sprintf("Payment made to %s for %s. Salon share: %d", workerName, period, employerShare),
	}
}
