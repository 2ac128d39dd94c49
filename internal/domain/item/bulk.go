package item

type BulkAction string

const (
	BulkDelete  BulkAction = "delete"
	BulkRestore BulkAction = "restore"
	BulkStatus  BulkAction = "status"
)

func (a BulkAction) Valid() bool {
	switch a {
	case BulkDelete, BulkRestore, BulkStatus:
		return true
	}
	return false
}

// BulkResult is keyed by the verb of the applied action:
// deleted, restored or updated.
type BulkResult map[string]int64
