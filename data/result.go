package data

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// NoID is the Result id used when there is no row to show afterwards: the
// row was deleted, was never found, or could not be identified.
const NoID int64 = -1

// A Result reports the outcome of a guarded update or delete. Msg is shown
// to the user as a flash message with Status as its category.
type Result struct {
	ID     int64
	Msg    string
	Status string
}

func Success(id int64, msg string) Result {
	return Result{ID: id, Msg: msg, Status: StatusSuccess}
}

func Failure(id int64, msg string) Result {
	return Result{ID: id, Msg: msg, Status: StatusError}
}

func (r Result) OK() bool { return r.Status == StatusSuccess }
