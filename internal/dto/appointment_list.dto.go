package dto

import "github.com/BruksfildServices01/salon-scheduler/internal/models"

type AppointmentListDTO struct {
	ID          uint     `json:"id"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Duration    int      `json:"duration"`
	Status      string   `json:"status"`
	Location    string   `json:"location"`
	Price       int64    `json:"price"`
	ClientID    uint     `json:"client_id"`
	ClientName  string   `json:"client_name"`
	WorkerID    uint     `json:"worker_id"`
	WorkerName  string   `json:"worker_name"`
	ServiceName string   `json:"service_name"`
	AddOns      []string `json:"add_ons"`
	Notes       string   `json:"notes,omitempty"`
}

func FromAppointment(ap *models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:          ap.ID,
		Date:        ap.Date,
		Time:        ap.Time,
		Duration:    ap.Duration,
		Status:      ap.Status,
		Location:    ap.Location,
		Price:       ap.Price,
		ClientID:    ap.ClientID,
		ClientName:  ap.Client.User.Name,
		WorkerID:    ap.WorkerID,
		WorkerName:  ap.Worker.User.Name,
		ServiceName: ap.Service.Name,
		AddOns:      ap.AddOns,
		Notes:       ap.Notes,
	}
}
