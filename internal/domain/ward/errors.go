package ward

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrNoBedAvailable    = errors.New("no available bed")
	ErrAdmissionNotFound = errors.New("admission not found")
	ErrAlreadyDischarged = errors.New("admission already discharged")
)
