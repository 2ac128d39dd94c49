package order

type Status string

const (
	StatusPending Status = "PENDING"
)

// InitialStatus is the status every order is created with.
func InitialStatus() Status {
	return StatusPending
}
