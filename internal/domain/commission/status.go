package commission

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)
